package compositor

import "github.com/inkraster/raster2d/color"

// ApplyLinear runs op over premultiplied linear-light colors dst and
// src. Unlike Apply, every operator including the four non-separable
// HSL blend modes is computed exactly; this is the precision tier those
// modes require.
func ApplyLinear(op Operator, dst, src color.Linear) color.Linear {
	switch {
	case op <= Plus:
		return applyPorterDuffLinear(op, src, dst)
	case op.IsSeparable():
		return applySeparableLinear(op, src, dst)
	default:
		return applyNonSeparableLinear(op, src, dst)
	}
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func applyPorterDuffLinear(op Operator, s, d color.Linear) color.Linear {
	switch op {
	case Clear:
		return color.Linear{}
	case Source:
		return s
	case Destination:
		return d
	case SourceOver:
		invSa := 1 - s.A
		return color.Linear{
			R: clamp01f(s.R + d.R*invSa),
			G: clamp01f(s.G + d.G*invSa),
			B: clamp01f(s.B + d.B*invSa),
			A: clamp01f(s.A + d.A*invSa),
		}
	case DestinationOver:
		invDa := 1 - d.A
		return color.Linear{
			R: clamp01f(s.R*invDa + d.R),
			G: clamp01f(s.G*invDa + d.G),
			B: clamp01f(s.B*invDa + d.B),
			A: clamp01f(s.A*invDa + d.A),
		}
	case SourceIn:
		return color.Linear{R: s.R * d.A, G: s.G * d.A, B: s.B * d.A, A: s.A * d.A}
	case DestinationIn:
		return color.Linear{R: d.R * s.A, G: d.G * s.A, B: d.B * s.A, A: d.A * s.A}
	case SourceOut:
		invDa := 1 - d.A
		return color.Linear{R: s.R * invDa, G: s.G * invDa, B: s.B * invDa, A: s.A * invDa}
	case DestinationOut:
		invSa := 1 - s.A
		return color.Linear{R: d.R * invSa, G: d.G * invSa, B: d.B * invSa, A: d.A * invSa}
	case SourceAtop:
		invSa := 1 - s.A
		return color.Linear{
			R: s.R*d.A + d.R*invSa,
			G: s.G*d.A + d.G*invSa,
			B: s.B*d.A + d.B*invSa,
			A: d.A,
		}
	case DestinationAtop:
		invDa := 1 - d.A
		return color.Linear{
			R: s.R*invDa + d.R*s.A,
			G: s.G*invDa + d.G*s.A,
			B: s.B*invDa + d.B*s.A,
			A: s.A,
		}
	case Xor:
		invDa := 1 - d.A
		invSa := 1 - s.A
		return color.Linear{
			R: s.R*invDa + d.R*invSa,
			G: s.G*invDa + d.G*invSa,
			B: s.B*invDa + d.B*invSa,
			A: clamp01f(s.A*invDa + d.A*invSa),
		}
	default: // Plus
		return color.Linear{
			R: clamp01f(s.R + d.R),
			G: clamp01f(s.G + d.G),
			B: clamp01f(s.B + d.B),
			A: clamp01f(s.A + d.A),
		}
	}
}

// separableFloatFunc computes a per-channel blend result from
// unpremultiplied source and destination channel values in [0,1].
type separableFloatFunc func(s, d float32) float32

func applySeparableLinear(op Operator, s, d color.Linear) color.Linear {
	if s.A == 0 {
		return d
	}
	if d.A == 0 {
		return s
	}

	sur, sug, sub := s.R/s.A, s.G/s.A, s.B/s.A
	dur, dug, dub := d.R/d.A, d.G/d.A, d.B/d.A

	fn := separableFloatBlendFunc(op)
	blendR := fn(sur, dur)
	blendG := fn(sug, dug)
	blendB := fn(sub, dub)

	invSa := 1 - s.A
	invDa := 1 - d.A
	finalA := clamp01f(s.A + d.A*invSa)
	saDa := s.A * d.A

	return color.Linear{
		R: clamp01f(d.R*invSa + s.R*invDa + saDa*blendR),
		G: clamp01f(d.G*invSa + s.G*invDa + saDa*blendG),
		B: clamp01f(d.B*invSa + s.B*invDa + saDa*blendB),
		A: finalA,
	}
}

func separableFloatBlendFunc(op Operator) separableFloatFunc {
	switch op {
	case Multiply:
		return func(s, d float32) float32 { return s * d }
	case Screen:
		return func(s, d float32) float32 { return 1 - (1-s)*(1-d) }
	case Overlay:
		return func(s, d float32) float32 {
			if d <= 0.5 {
				return 2 * s * d
			}
			return 1 - 2*(1-s)*(1-d)
		}
	case Darken:
		return func(s, d float32) float32 {
			if s < d {
				return s
			}
			return d
		}
	case Lighten:
		return func(s, d float32) float32 {
			if s > d {
				return s
			}
			return d
		}
	case ColorDodge:
		return func(s, d float32) float32 {
			// Backdrop-zero wins over source-one: dodge(1, 0) is 0.
			if d <= 0 {
				return 0
			}
			if s >= 1 {
				return 1
			}
			return clamp01f(d / (1 - s))
		}
	case ColorBurn:
		return func(s, d float32) float32 {
			// Backdrop-one wins over source-zero: burn(0, 1) is 1.
			if d >= 1 {
				return 1
			}
			if s <= 0 {
				return 0
			}
			v := 1 - (1-d)/s
			if v < 0 {
				return 0
			}
			return v
		}
	case HardLight:
		return func(s, d float32) float32 {
			if s <= 0.5 {
				return 2 * s * d
			}
			return 1 - 2*(1-s)*(1-d)
		}
	case SoftLight:
		return softLightFloat
	case Difference:
		return func(s, d float32) float32 {
			if s > d {
				return s - d
			}
			return d - s
		}
	default: // Exclusion
		return func(s, d float32) float32 { return s + d - 2*s*d }
	}
}

func softLightFloat(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dx float32
	if d <= 0.25 {
		dx = ((16*d-12)*d + 4) * d
	} else {
		dx = sqrtf32(d)
	}
	return d + (2*s-1)*(dx-d)
}

func applyNonSeparableLinear(op Operator, s, d color.Linear) color.Linear {
	if s.A == 0 {
		return d
	}
	if d.A == 0 {
		return s
	}

	sur, sug, sub := s.R/s.A, s.G/s.A, s.B/s.A
	dur, dug, dub := d.R/d.A, d.G/d.A, d.B/d.A

	var blendR, blendG, blendB float32
	switch op {
	case Hue:
		blendR, blendG, blendB = hslHue(sur, sug, sub, dur, dug, dub)
	case Saturation:
		blendR, blendG, blendB = hslSaturation(sur, sug, sub, dur, dug, dub)
	case Color:
		blendR, blendG, blendB = hslColor(sur, sug, sub, dur, dug, dub)
	default: // Luminosity
		blendR, blendG, blendB = hslLuminosity(sur, sug, sub, dur, dug, dub)
	}

	invSa := 1 - s.A
	invDa := 1 - d.A
	finalA := clamp01f(s.A + d.A*invSa)
	saDa := s.A * d.A

	return color.Linear{
		R: clamp01f(d.R*invSa + s.R*invDa + saDa*blendR),
		G: clamp01f(d.G*invSa + s.G*invDa + saDa*blendG),
		B: clamp01f(d.B*invSa + s.B*invDa + saDa*blendB),
		A: finalA,
	}
}
