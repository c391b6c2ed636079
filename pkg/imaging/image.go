// Package imaging turns raw capture buffers into decodable still
// images. Converters exist for packed YUV 4:2:2 buffers and for
// already-encoded formats handled by the standard image codecs.
package imaging

import (
	"image"
	"image/color"
)

// Image is a tightly packed RGB raster, three bytes per pixel in
// row-major order with no padding. It implements image.Image so it can
// be handed to a symbol recognizer directly.
type Image struct {
	pix    []byte
	width  int
	height int
}

// ColorModel implements image.Image.
func (p *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (p *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	offset := (y*p.width + x) * 3
	return color.NRGBA{p.pix[offset], p.pix[offset+1], p.pix[offset+2], 255}
}

// Pix returns the underlying packed RGB bytes.
func (p *Image) Pix() []byte {
	return p.pix
}

var _ image.Image = (*Image)(nil)

// fromImage repacks any decoded image into the RGB24 layout.
func fromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			i += 3
		}
	}
	return &Image{pix: pix, width: w, height: h}
}
