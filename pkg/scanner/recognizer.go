package scanner

import (
	"image"

	"github.com/liyue201/goqr"
)

// Result is one recognized symbol, or the reason it could not be read.
type Result struct {
	Text string
	Err  error
}

// Recognizer finds barcode/QR symbols in a still image. Implementations
// report each symbol independently; an image with no symbols yields an
// empty slice, not an error.
type Recognizer interface {
	Recognize(img image.Image) ([]Result, error)
}

// GoQR recognizes QR codes using the pure-Go goqr engine.
type GoQR struct{}

// Recognize implements Recognizer. goqr reports "nothing found" as an
// error; that is a valid empty outcome here, not a failure.
func (GoQR) Recognize(img image.Image) ([]Result, error) {
	codes, err := goqr.Recognize(img)
	if err != nil {
		return nil, nil
	}
	results := make([]Result, 0, len(codes))
	for _, code := range codes {
		results = append(results, Result{Text: string(code.Payload)})
	}
	return results, nil
}

var _ Recognizer = GoQR{}
