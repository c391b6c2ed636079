package scanner

import (
	"fmt"
	"log/slog"

	"github.com/brandsimon/qrcode-scanner/pkg/capture"
)

// Config holds settings for live scan sessions.
type Config struct {
	// Target is the desired capture size. The closest mode the device
	// supports is negotiated; see capture.ChooseMode.
	Target capture.Resolution

	// Preferred lists acceptable pixel formats in priority order.
	// Candidate enumeration follows this order, which decides ties
	// between equally close frame sizes.
	Preferred []capture.FourCC

	// Buffers is the number of driver buffers to request.
	Buffers uint32

	// Recognizer overrides the symbol recognizer. Nil selects GoQR.
	Recognizer Recognizer

	// Logger overrides the session logger. Nil selects slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the standard scan configuration: 640x480,
// YUYV preferred over MJPG, 30 driver buffers.
func DefaultConfig() Config {
	return Config{
		Target:    capture.Resolution{Width: 640, Height: 480},
		Preferred: []capture.FourCC{capture.FourCCYUYV, capture.FourCCMJPG},
		Buffers:   30,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Target.Width == 0 || c.Target.Height == 0 {
		return fmt.Errorf("scanner: target size must be positive, got %s", c.Target)
	}
	if len(c.Preferred) == 0 {
		return fmt.Errorf("scanner: at least one preferred pixel format is required")
	}
	if c.Buffers == 0 {
		return fmt.Errorf("scanner: buffer count must be positive")
	}
	return nil
}
