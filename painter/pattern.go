package painter

import (
	"github.com/inkraster/raster2d/color"
	"github.com/inkraster/raster2d/gradient"
	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/wide"
)

// Pattern is the source of pixel color a Fill or Stroke samples at each
// device-space coordinate it covers. GetPixel is the scalar path every
// Pattern must support; GetRGBAVec/GetColorVec let a Pattern opt into
// whole-span sampling (wide.LaneWidth pixels at once) when its geometry
// makes that cheap — a solid fill or an axis-aligned gradient can fill a
// lane in a tight loop, while an arbitrary per-pixel function has no
// better default than calling GetPixel LaneWidth times.
type Pattern interface {
	GetPixel(x, y int32) pixfmt.Pixel
	GetRGBAVec(x, y int32) wide.RGBAVec
	GetColorVec(x, y int32) wide.ColorVec
}

// SolidPattern is a Pattern that returns the same premultiplied pixel
// everywhere, the fastest and most common case.
type SolidPattern struct {
	Pixel pixfmt.Pixel
}

func (p SolidPattern) GetPixel(x, y int32) pixfmt.Pixel { return p.Pixel }

func (p SolidPattern) GetRGBAVec(x, y int32) wide.RGBAVec {
	var v wide.RGBAVec
	for i := range v {
		v[i] = p.Pixel
	}
	return v
}

func (p SolidPattern) GetColorVec(x, y int32) wide.ColorVec {
	l := color.FromPixel(p.Pixel)
	var v wide.ColorVec
	for i := range v {
		v[i] = wide.Sample{R: l.R, G: l.G, B: l.B, A: l.A}
	}
	return v
}

// GradientPattern adapts a *gradient.Gradient into a Pattern, sampling
// one device pixel (or lane of them) at a time.
type GradientPattern struct {
	Gradient *gradient.Gradient
}

func (p GradientPattern) GetPixel(x, y int32) pixfmt.Pixel {
	return p.Gradient.At(float32(x)+0.5, float32(y)+0.5).ToPixel(pixfmt.RGBA)
}

func (p GradientPattern) GetRGBAVec(x, y int32) wide.RGBAVec {
	var v wide.RGBAVec
	for i := range v {
		v[i] = p.GetPixel(x+int32(i), y)
	}
	return v
}

func (p GradientPattern) GetColorVec(x, y int32) wide.ColorVec {
	var v wide.ColorVec
	for i := range v {
		l := p.Gradient.At(float32(x+int32(i))+0.5, float32(y)+0.5)
		v[i] = wide.Sample{R: l.R, G: l.G, B: l.B, A: l.A}
	}
	return v
}
