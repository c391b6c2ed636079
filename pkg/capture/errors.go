package capture

import "errors"

// Sentinel errors for capture negotiation.
var (
	// ErrNoSupportedFormat is returned when a device advertises no
	// mode the scanner can use.
	ErrNoSupportedFormat = errors.New("capture: no supported camera format")

	// ErrFormatNotHonored is returned when the driver applies a
	// different pixel format than the one requested.
	ErrFormatNotHonored = errors.New("capture: driver did not honor requested pixel format")
)
