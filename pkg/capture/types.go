// Package capture provides camera device access for scan sessions:
// pixel format codes, frame size negotiation, and a V4L2-backed device
// implementation.
package capture

import "fmt"

// FourCC is a four character code identifying a pixel or container
// encoding, as used by the V4L2 subsystem. The zero value means
// "no format chosen".
type FourCC [4]byte

// Well-known format codes handled by the imaging pipeline.
var (
	// FourCCNone is the "no format chosen" sentinel.
	FourCCNone = FourCC{}

	// FourCCYUYV is packed YUV 4:2:2 (two pixels per [Y0 U Y1 V] group).
	FourCCYUYV = FourCCOf("YUYV")

	// FourCCMJPG is Motion-JPEG (each frame is a complete JPEG image).
	FourCCMJPG = FourCCOf("MJPG")
)

// FourCCOf builds a FourCC from a four character string.
// Shorter strings are space padded, longer ones truncated.
func FourCCOf(s string) FourCC {
	var f FourCC
	for i := 0; i < len(f); i++ {
		if i < len(s) {
			f[i] = s[i]
		} else {
			f[i] = ' '
		}
	}
	return f
}

// FourCCFromCode converts a little-endian V4L2 pixel format value.
func FourCCFromCode(code uint32) FourCC {
	return FourCC{byte(code), byte(code >> 8), byte(code >> 16), byte(code >> 24)}
}

// Code returns the little-endian V4L2 pixel format value.
func (f FourCC) Code() uint32 {
	return uint32(f[0]) | uint32(f[1])<<8 | uint32(f[2])<<16 | uint32(f[3])<<24
}

// IsNone reports whether no format has been chosen.
func (f FourCC) IsNone() bool {
	return f == FourCCNone
}

// String returns the four character tag.
func (f FourCC) String() string {
	if f.IsNone() {
		return "none"
	}
	return string(f[:])
}

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  uint32
	Height uint32
}

// String returns e.g. "640x480".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// CandidateMode is one capture mode a device advertises as supported.
type CandidateMode struct {
	Format FourCC
	Size   Resolution
}

// Mode is the negotiated capture mode. Once a session commits to a
// Mode it is never renegotiated.
type Mode struct {
	Format FourCC
	Width  uint32
	Height uint32
}

// String returns e.g. "YUYV 640x480".
func (m Mode) String() string {
	return fmt.Sprintf("%s %dx%d", m.Format, m.Width, m.Height)
}

// SizeRange describes an advertised frame size. Drivers report either a
// fixed size (step 0, min == max) or a stepwise range.
type SizeRange struct {
	MinWidth  uint32
	MaxWidth  uint32
	StepWidth uint32

	MinHeight  uint32
	MaxHeight  uint32
	StepHeight uint32
}

// Nearest resolves the advertised range to the single size closest to
// target: fixed sizes resolve to themselves, stepwise ranges to the
// in-range step nearest the target on each axis. Returns false for an
// empty or degenerate range.
func (r SizeRange) Nearest(target Resolution) (Resolution, bool) {
	w, ok := nearestStep(target.Width, r.MinWidth, r.MaxWidth, r.StepWidth)
	if !ok {
		return Resolution{}, false
	}
	h, ok := nearestStep(target.Height, r.MinHeight, r.MaxHeight, r.StepHeight)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Width: w, Height: h}, true
}

func nearestStep(t, min, max, step uint32) (uint32, bool) {
	if max == 0 || max < min {
		return 0, false
	}
	if step == 0 {
		// Fixed size: drivers report min == max here.
		return max, true
	}
	if t <= min {
		return min, true
	}
	if t >= max {
		return max, true
	}
	v := min + (t-min+step/2)/step*step
	if v > max {
		v = max
	}
	return v, true
}

// Frame is a raw capture buffer tagged with the format and size it was
// captured with. Data is exclusively owned by the frame, never a view
// into driver storage.
type Frame struct {
	Format FourCC
	Width  uint32
	Height uint32
	Data   []byte
}

// Device is a capture backend. Implementations deliver one frame at a
// time; buffers returned by Next are copies the caller owns.
type Device interface {
	// Candidates enumerates supported capture modes for the given
	// formats, in preference order. Stepwise size ranges are resolved
	// against target, so the result is always a finite discrete list.
	Candidates(prefs []FourCC, target Resolution) ([]CandidateMode, error)

	// Apply requests the given mode and returns what the driver
	// actually applied, which may differ from the request.
	Apply(m Mode) (Mode, error)

	// Next blocks until the next captured frame is available and
	// returns a copy of its contents.
	Next() ([]byte, error)

	// Close stops capture and releases the device.
	Close() error
}
