package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/brandsimon/qrcode-scanner/pkg/capture"
)

// flatYUYVFrame builds a width x height frame where every pixel encodes
// the same (y, u, v) triple.
func flatYUYVFrame(width, height uint32, y, u, v byte) []byte {
	buf := make([]byte, width*height*2)
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i] = y
		buf[i+1] = u
		buf[i+2] = y
		buf[i+3] = v
	}
	return buf
}

func TestYUYVToImageFlatFrames(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v byte
		r, g, b byte
	}{
		{"black", 16, 128, 128, 0, 0, 0},
		{"white", 235, 128, 128, 255, 255, 255},
		{"red", 81, 90, 240, 255, 0, 0},
		{"green", 145, 54, 34, 0, 255, 1},
		{"clamped high", 255, 128, 255, 255, 175, 255},
		{"clamped low", 0, 128, 0, 0, 85, 0},
	}
	const width, height = 4, 2
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := YUYVToImage(flatYUYVFrame(width, height, tt.y, tt.u, tt.v), width, height)
			if err != nil {
				t.Fatalf("YUYVToImage failed: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, width, height) {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			want := color.NRGBA{tt.r, tt.g, tt.b, 255}
			for py := 0; py < height; py++ {
				for px := 0; px < width; px++ {
					if got := img.At(px, py); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", px, py, got, want)
					}
				}
			}
			if len(img.Pix()) != width*height*3 {
				t.Errorf("raster is %d bytes, want %d", len(img.Pix()), width*height*3)
			}
		})
	}
}

func TestYUYVToImagePixelPair(t *testing.T) {
	// One [Y0 U Y1 V] group: black and white share a chroma pair.
	raw := []byte{16, 128, 235, 128}
	img, err := YUYVToImage(raw, 2, 1)
	if err != nil {
		t.Fatalf("YUYVToImage failed: %v", err)
	}
	if got := img.At(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("first pixel = %v, want black", got)
	}
	if got := img.At(1, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("second pixel = %v, want white", got)
	}
}

func TestYUYVToImageBadInput(t *testing.T) {
	tests := []struct {
		name          string
		raw           []byte
		width, height uint32
	}{
		{"short buffer", make([]byte, 7), 2, 2},
		{"long buffer", make([]byte, 9), 2, 2},
		{"odd width", make([]byte, 6), 3, 1},
		{"zero width", nil, 0, 4},
		{"zero height", nil, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := YUYVToImage(tt.raw, tt.width, tt.height)
			if !errors.Is(err, ErrDecodeFailure) {
				t.Errorf("expected ErrDecodeFailure, got %v", err)
			}
		})
	}
}

func TestDecodeStill(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	src.SetNRGBA(2, 1, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding fixture failed: %v", err)
	}

	// Deliberately wrong size hints: the codec recovers the real ones.
	img, err := DecodeStill(buf.Bytes(), 999, 999)
	if err != nil {
		t.Fatalf("DecodeStill failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v, want 3x2", img.Bounds())
	}
	if got := img.At(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := img.At(2, 1); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("pixel (2,1) = %v, want blue", got)
	}
}

func TestDecodeStillGarbage(t *testing.T) {
	_, err := DecodeStill([]byte("definitely not an image"), 640, 480)
	if !errors.Is(err, ErrDecodeFailure) {
		t.Errorf("expected ErrDecodeFailure, got %v", err)
	}
}

func TestConverterFor(t *testing.T) {
	for _, f := range []capture.FourCC{capture.FourCCYUYV, capture.FourCCMJPG} {
		conv, err := ConverterFor(f)
		if err != nil {
			t.Errorf("ConverterFor(%s) failed: %v", f, err)
		}
		if conv == nil {
			t.Errorf("ConverterFor(%s) returned nil converter", f)
		}
	}

	_, err := ConverterFor(capture.FourCCOf("H264"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	_, err = ConverterFor(capture.FourCCNone)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for the none sentinel, got %v", err)
	}
}
