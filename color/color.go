// Package color converts between the premultiplied pixel bytes that
// pixfmt.Pixel stores and a premultiplied Linear representation, the
// space gradients interpolate in and dither samples from. The default
// conversion is a direct per-channel rescale: raster2d's core pixel
// formats carry no implied gamma curve. FromSRGBPixel and
// Linear.ToSRGBPixel are the separate, explicit bridge for callers
// working with conventionally gamma-encoded 8-bit color assets.
package color

import "github.com/inkraster/raster2d/pixfmt"

// Linear is a premultiplied color in the working color space used for
// gradient and dither math. Channels are normally in [0,1] but
// intermediate arithmetic (gradient extrapolation, blend math) may
// produce values outside that range until Clamp is applied.
type Linear struct {
	R, G, B, A float32
}

// Lerp linearly interpolates between l and other by t. t is not clamped,
// matching gradient extend-mode math that may need t outside [0,1].
func (l Linear) Lerp(other Linear, t float32) Linear {
	return Linear{
		R: l.R + (other.R-l.R)*t,
		G: l.G + (other.G-l.G)*t,
		B: l.B + (other.B-l.B)*t,
		A: l.A + (other.A-l.A)*t,
	}
}

// Clamp restricts every channel to [0, 1].
func (l Linear) Clamp() Linear {
	return Linear{clamp01(l.R), clamp01(l.G), clamp01(l.B), clamp01(l.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FromPixel decodes p into a premultiplied Linear color by a direct
// per-channel rescale against the format's max value. Alpha-only
// formats decode to black with the format's alpha.
func FromPixel(p pixfmt.Pixel) Linear {
	rgba := p.CopySrc(pixfmt.RGBA)
	return Linear{
		R: float32(rgba.R) / 255,
		G: float32(rgba.G) / 255,
		B: float32(rgba.B) / 255,
		A: float32(rgba.A) / 255,
	}
}

// ToPixel re-encodes l as a premultiplied pixel in the given format,
// after clamping to [0,1]. Each channel quantizes as
// min(255, round(v*256)): the fixed-point write-back treats a float
// channel as a 0..256 range and saturates the top level, so any v of
// 255/256 or above lands on 255.
func (l Linear) ToPixel(format pixfmt.Format) pixfmt.Pixel {
	l = l.Clamp()
	rgba := pixfmt.Pixel{
		Format: pixfmt.RGBA,
		R:      quantize256(l.R),
		G:      quantize256(l.G),
		B:      quantize256(l.B),
		A:      quantize256(l.A),
	}
	return rgba.CopySrc(format)
}

func quantize256(v float32) uint8 {
	n := uint32(v*256 + 0.5)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// FromSRGBPixel decodes p, treated as an sRGB-gamma-encoded color with
// linear premultiplied alpha, into linear light via the sRGB EOTF. Use
// this instead of FromPixel when bridging from a conventionally
// gamma-encoded 8-bit asset (e.g. a decoded image file).
func FromSRGBPixel(p pixfmt.Pixel) Linear {
	rgba := p.CopySrc(pixfmt.RGBA)
	straight := pixfmt.Demultiply(rgba)
	a := float32(straight.A) / 255
	return Linear{
		R: SRGBToLinearFast(straight.R) * a,
		G: SRGBToLinearFast(straight.G) * a,
		B: SRGBToLinearFast(straight.B) * a,
		A: a,
	}
}

// ToSRGBPixel re-encodes l through the sRGB OETF into a gamma-encoded
// premultiplied pixel in the given format. The inverse of FromSRGBPixel.
func (l Linear) ToSRGBPixel(format pixfmt.Format) pixfmt.Pixel {
	l = l.Clamp()
	if l.A <= 0 {
		return pixfmt.Pixel{Format: pixfmt.RGBA}.CopySrc(format)
	}
	straight := pixfmt.Pixel{
		Format: pixfmt.RGBA,
		R:      LinearToSRGBFast(l.R / l.A),
		G:      LinearToSRGBFast(l.G / l.A),
		B:      LinearToSRGBFast(l.B / l.A),
		A:      uint8(l.A*255 + 0.5),
	}
	return pixfmt.Multiply(straight).CopySrc(format)
}
