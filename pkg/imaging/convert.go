package imaging

import (
	"bytes"
	"fmt"
	"image"

	// Registered codecs for the auto-detecting DecodeStill path.
	_ "image/jpeg"
	_ "image/png"

	"github.com/brandsimon/qrcode-scanner/pkg/capture"
)

// Converter turns one raw capture buffer into a still image.
type Converter func(raw []byte, width, height uint32) (*Image, error)

// converters is the closed mapping from pixel format to conversion
// path. Formats outside this map are rejected at negotiation time.
var converters = map[capture.FourCC]Converter{
	capture.FourCCYUYV: YUYVToImage,
	capture.FourCCMJPG: DecodeStill,
}

// ConverterFor returns the converter bound to the given pixel format.
func ConverterFor(f capture.FourCC) (Converter, error) {
	c, ok := converters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return c, nil
}

// YUYVToImage converts a packed YUV 4:2:2 buffer to RGB. The buffer is
// a sequence of [Y0 U Y1 V] groups where U and V are shared by the
// horizontal pixel pair, so the width must be even and the buffer
// exactly width*height*2 bytes.
func YUYVToImage(raw []byte, width, height uint32) (*Image, error) {
	if width == 0 || height == 0 || width%2 != 0 {
		return nil, fmt.Errorf("%w: invalid YUYV dimensions %dx%d", ErrDecodeFailure, width, height)
	}
	if uint32(len(raw)) != width*height*2 {
		return nil, fmt.Errorf("%w: YUYV buffer is %d bytes, want %d for %dx%d",
			ErrDecodeFailure, len(raw), width*height*2, width, height)
	}

	pix := make([]byte, width*height*3)
	j := 0
	for i := 0; i+3 < len(raw); i += 4 {
		y0, u, y1, v := raw[i], raw[i+1], raw[i+2], raw[i+3]
		pix[j], pix[j+1], pix[j+2] = yuvToRGB(y0, u, v)
		pix[j+3], pix[j+4], pix[j+5] = yuvToRGB(y1, u, v)
		j += 6
	}
	return &Image{pix: pix, width: int(width), height: int(height)}, nil
}

// yuvToRGB applies the fixed-point BT.601 transform for one pixel.
func yuvToRGB(y, u, v byte) (byte, byte, byte) {
	c := int32(y) - 16
	d := int32(u) - 128
	e := int32(v) - 128
	r := clamp((298*c + 409*e + 128) >> 8)
	g := clamp((298*c - 100*d - 208*e + 128) >> 8)
	b := clamp((298*c + 516*d + 128) >> 8)
	return r, g, b
}

func clamp(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// DecodeStill converts an already-encoded still image (e.g. one
// Motion-JPEG frame) using the registered standard codecs. The codec
// recovers the true dimensions from the stream itself; width and
// height are informational only.
func DecodeStill(raw []byte, width, height uint32) (*Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return fromImage(img), nil
}
