package scanner

import "errors"

// Sentinel errors for scan sessions.
var (
	// ErrExhausted is returned once a fixed-frames or fixed-results
	// queue is drained. Every later call returns it again, so callers
	// can assert "stream ended" deterministically.
	ErrExhausted = errors.New("scanner: fixed input exhausted")

	// ErrClosed is returned when decoding from a closed session.
	ErrClosed = errors.New("scanner: session closed")
)
