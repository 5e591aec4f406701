package painter

import (
	"github.com/inkraster/raster2d/compositor"
	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/surface"
)

// Surface is the destination Fill and Stroke composite onto. It is
// satisfied by Wrap(*surface.Surface); a caller never implements it
// directly, but keeping it as an interface (rather than taking a
// *surface.Surface parameter) keeps the painter/surface boundary narrow:
// the painter only ever needs pixel access, stride views, and the two
// final compositing steps.
type Surface interface {
	Width() int
	Height() int
	Format() pixfmt.Format
	GetPixel(x, y int) (pixfmt.Pixel, bool)
	PutPixel(x, y int, px pixfmt.Pixel)
	Stride(x, y, length int) compositor.Stride
	SrcOver(src Surface, dstX, dstY int) error
	DstIn(src Surface, dstX, dstY int) error
}

// Adapter wraps a *surface.Surface as a Surface, the bridge between the
// concrete pixel buffer and the painter's compositor-facing interface.
type Adapter struct {
	*surface.Surface
}

// Wrap adapts s for use as a Fill/Stroke destination.
func Wrap(s *surface.Surface) *Adapter { return &Adapter{Surface: s} }

// Stride returns a compositor.Stride view over length pixels of the
// adapted surface starting at (x, y). Non-RGBA surfaces have no planar
// batch representation and return a zero Stride; paintAliased and
// paintSupersampled fall back to per-pixel GetPixel/PutPixel for those.
func (a *Adapter) Stride(x, y, length int) compositor.Stride {
	return compositor.StrideOf(a.Surface, x, y, length)
}

func (a *Adapter) SrcOver(src Surface, dstX, dstY int) error {
	other, ok := src.(*Adapter)
	if !ok {
		return surface.ErrFormatMismatch
	}
	return a.Surface.SrcOver(other.Surface, dstX, dstY)
}

func (a *Adapter) DstIn(src Surface, dstX, dstY int) error {
	other, ok := src.(*Adapter)
	if !ok {
		return surface.ErrFormatMismatch
	}
	return a.Surface.DstIn(other.Surface, dstX, dstY)
}

var _ Surface = (*Adapter)(nil)
