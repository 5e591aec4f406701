package surface

import (
	stdimage "image"
	"image/color"
	"image/draw"

	"github.com/inkraster/raster2d/pixfmt"
)

// ColorModel returns the stdlib color.Model matching s's format: straight-
// alpha color.NRGBAModel for RGB/RGBA (since image.Image's contract assumes
// non-premultiplied color.Color values), color.AlphaModel for the four
// alpha-only formats.
func (s *Surface) ColorModel() color.Model {
	if !s.format.IsAlphaOnly() {
		return color.NRGBAModel
	}
	return color.AlphaModel
}

// Bounds returns s's extent as an image.Rectangle anchored at the origin.
func (s *Surface) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, s.width, s.height)
}

// At implements image.Image. Premultiplied RGBA is demultiplied into the
// straight-alpha color.NRGBA image.Image's contract expects; alpha-only
// formats widen their channel to 8 bits.
func (s *Surface) At(x, y int) color.Color {
	px, ok := s.GetPixel(x, y)
	if !ok {
		return color.NRGBA{}
	}
	switch s.format {
	case pixfmt.RGB:
		return color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255}
	case pixfmt.RGBA:
		straight := pixfmt.Demultiply(px)
		return color.NRGBA{R: straight.R, G: straight.G, B: straight.B, A: straight.A}
	default:
		a := uint8(pixfmt.ScaleAlpha(uint32(px.A), s.format.Bits(), 8))
		return color.Alpha{A: a}
	}
}

// Set implements draw.Image, accepting any stdlib color.Color and
// premultiplying it (for RGB/RGBA) before storing it in s's native format.
func (s *Surface) Set(x, y int, c color.Color) {
	if !s.inBounds(x, y) {
		return
	}
	if s.format.IsAlphaOnly() {
		_, _, _, a := c.RGBA()
		v := uint8(pixfmt.ScaleAlpha(uint32(a>>8), 8, s.format.Bits()))
		s.PutPixel(x, y, pixfmt.Pixel{Format: s.format, A: v})
		return
	}
	straight := color.NRGBAModel.Convert(c).(color.NRGBA)
	px := pixfmt.Multiply(pixfmt.Pixel{Format: pixfmt.RGBA, R: straight.R, G: straight.G, B: straight.B, A: straight.A})
	s.PutPixel(x, y, px)
}

var (
	_ stdimage.Image = (*Surface)(nil)
	_ draw.Image     = (*Surface)(nil)
)
