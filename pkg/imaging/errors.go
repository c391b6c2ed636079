package imaging

import "errors"

// Sentinel errors for the imaging pipeline.
var (
	// ErrDecodeFailure is returned when a raw buffer cannot be turned
	// into a still image: malformed length, bad dimensions, or a
	// stream the codec rejects.
	ErrDecodeFailure = errors.New("imaging: failed to convert buffer to image")

	// ErrUnsupportedFormat is returned when no converter is mapped for
	// a pixel format.
	ErrUnsupportedFormat = errors.New("imaging: no converter for pixel format")
)
