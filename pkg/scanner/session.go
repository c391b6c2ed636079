// Package scanner decodes barcode/QR payloads from a stream of camera
// frames. A Session is created in one of three modes: Live (a real
// capture device), FixedFrames (pre-loaded raw buffers) or FixedResults
// (pre-loaded outcomes). All three share the same DecodeNext contract,
// so consumers can be tested without a camera.
package scanner

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brandsimon/qrcode-scanner/pkg/capture"
	"github.com/brandsimon/qrcode-scanner/pkg/imaging"
)

// Outcome is one pre-recorded decode result for fixed-results sessions.
type Outcome struct {
	Texts []string
	Err   error
}

type sessionMode int

const (
	modeLive sessionMode = iota
	modeFixedFrames
	modeFixedResults
)

// Session owns a frame source and a symbol recognizer. The mode is
// fixed at construction and never changes. Sessions are not safe for
// concurrent use; one caller drives DecodeNext in a loop.
type Session struct {
	id     string
	mode   sessionMode
	logger *slog.Logger
	rec    Recognizer

	// Live state. The converter is bound once, at negotiation time.
	dev     capture.Device
	applied capture.Mode
	convert imaging.Converter
	closed  bool

	// Fixed queues, drained front to back.
	frames   []capture.Frame
	outcomes []Outcome
}

// Open opens the capture device at path and negotiates a capture mode
// for a live session. Negotiation failure, a driver substituting a
// pixel format, or a negotiated format with no converter are all fatal
// here, before any frame is captured.
func Open(path string, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dev, mode, err := capture.OpenV4L2(path, cfg.Target, cfg.Preferred, cfg.Buffers)
	if err != nil {
		return nil, err
	}
	s, err := NewLive(dev, mode, cfg.Recognizer, cfg.Logger)
	if err != nil {
		dev.Close()
		return nil, err
	}
	s.logger.Info("scan session opened",
		"device", path,
		"format", mode.Format.String(),
		"width", mode.Width,
		"height", mode.Height,
	)
	return s, nil
}

// NewLive builds a live session around an already-negotiated device.
// The converter for the applied mode is bound up front; a format
// without one is rejected.
func NewLive(dev capture.Device, applied capture.Mode, rec Recognizer, logger *slog.Logger) (*Session, error) {
	conv, err := imaging.ConverterFor(applied.Format)
	if err != nil {
		return nil, err
	}
	s := newSession(modeLive, rec, logger)
	s.dev = dev
	s.applied = applied
	s.convert = conv
	return s, nil
}

// NewFixedFrames builds a session that replays pre-loaded raw frames.
// Each frame carries its own format tag and is converted with the
// matching converter, independent of any negotiation.
func NewFixedFrames(frames []capture.Frame, rec Recognizer, logger *slog.Logger) *Session {
	s := newSession(modeFixedFrames, rec, logger)
	s.frames = frames
	return s
}

// NewFixedResults builds a session that replays pre-recorded outcomes
// without touching the imaging pipeline.
func NewFixedResults(outcomes []Outcome, logger *slog.Logger) *Session {
	s := newSession(modeFixedResults, nil, logger)
	s.outcomes = outcomes
	return s
}

func newSession(mode sessionMode, rec Recognizer, logger *slog.Logger) *Session {
	if rec == nil {
		rec = GoQR{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		mode:   mode,
		rec:    rec,
		logger: logger.With("session", id),
	}
}

// DecodeNext advances the frame source by one frame and returns the
// decoded payloads, in the order the recognizer reported them. An empty
// slice means the frame held no readable symbol and is not an error.
//
// Errors are per-call: a capture or conversion failure does not end the
// session, the caller may simply try the next frame. Exhausted fixed
// queues keep returning ErrExhausted.
func (s *Session) DecodeNext() ([]string, error) {
	switch s.mode {
	case modeLive:
		return s.decodeLive()
	case modeFixedFrames:
		return s.decodeFixedFrame()
	case modeFixedResults:
		if len(s.outcomes) == 0 {
			return nil, ErrExhausted
		}
		out := s.outcomes[0]
		s.outcomes = s.outcomes[1:]
		return out.Texts, out.Err
	default:
		return nil, fmt.Errorf("scanner: unknown session mode %d", s.mode)
	}
}

func (s *Session) decodeLive() ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}
	buf, err := s.dev.Next()
	if err != nil {
		return nil, fmt.Errorf("scanner: capture frame: %w", err)
	}
	img, err := s.convert(buf, s.applied.Width, s.applied.Height)
	if err != nil {
		return nil, err
	}
	return s.recognize(img)
}

func (s *Session) decodeFixedFrame() ([]string, error) {
	if len(s.frames) == 0 {
		return nil, ErrExhausted
	}
	frame := s.frames[0]
	s.frames = s.frames[1:]

	conv, err := imaging.ConverterFor(frame.Format)
	if err != nil {
		return nil, err
	}
	img, err := conv(frame.Data, frame.Width, frame.Height)
	if err != nil {
		return nil, err
	}
	return s.recognize(img)
}

// recognize runs the recognizer and normalizes its per-symbol results:
// unreadable symbols are logged and dropped, never escalated to a
// call-level error.
func (s *Session) recognize(img image.Image) ([]string, error) {
	results, err := s.rec.Recognize(img)
	if err != nil {
		return nil, fmt.Errorf("scanner: recognize: %w", err)
	}
	texts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.logger.Debug("dropping unreadable symbol", "err", r.Err)
			continue
		}
		texts = append(texts, r.Text)
	}
	return texts, nil
}

// Mode returns the negotiated capture mode of a live session, or the
// zero Mode for fixed sessions.
func (s *Session) Mode() capture.Mode {
	return s.applied
}

// Close releases the capture device of a live session. It is a no-op
// for fixed sessions and safe to call more than once.
func (s *Session) Close() error {
	if s.mode != modeLive || s.closed {
		return nil
	}
	s.closed = true
	return s.dev.Close()
}
