package compositor

import (
	"github.com/inkraster/raster2d"
	"github.com/inkraster/raster2d/pixfmt"
)

// mulDiv255 multiplies two premultiplied byte channels and divides by
// 255, truncating toward zero. Truncation, not rounding: the vector path
// computes the same quotient through its shift approximation and the two
// must agree lane for lane.
func mulDiv255(a, b uint8) uint8 {
	return uint8(uint16(a) * uint16(b) / 255)
}

// addClamp255 adds two byte channels, clamping the sum to 255.
func addClamp255(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// unionAlpha combines two alpha channels as sa + da - sa*da/255, the
// union form of the over-operator alpha. Identical to da*(255-sa)/255 in
// exact arithmetic but not under truncation; the union form is the one
// the pixel-level SrcOver and the batch path both use.
func unionAlpha(sa, da uint8) uint8 {
	return uint8(uint16(sa) + uint16(da) - uint16(sa)*uint16(da)/255)
}

func minByte(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxByte(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// separableFunc computes a per-channel blend result from straight-alpha
// (unpremultiplied) source and destination channel values.
type separableFunc func(s, d uint8) uint8

// Apply runs op over premultiplied pixels dst and src, both converted to
// RGBA for the blend math, and returns the result re-encoded in dst's
// original format. Operators that require float precision (RequiresFloat)
// degrade to Clear in this integer path rather than approximate the
// non-separable HSL math in 8-bit channels; use ApplyLinear for those.
func Apply(op Operator, dst, src pixfmt.Pixel) pixfmt.Pixel {
	originalFormat := dst.Format
	d := dst.CopySrc(pixfmt.RGBA)
	s := src.CopySrc(pixfmt.RGBA)

	var r, g, b, a uint8
	switch {
	case op.RequiresFloat():
		raster2d.Logger().Debug("compositor: integer path degrades float-only operator to clear", "operator", op)
		r, g, b, a = 0, 0, 0, 0
	case op.IsSeparable() && op > Plus:
		r, g, b, a = applySeparableBlend(op, s, d)
	default:
		r, g, b, a = applyPorterDuff(op, s, d)
	}

	return pixfmt.Pixel{Format: pixfmt.RGBA, R: r, G: g, B: b, A: a}.CopySrc(originalFormat)
}

func applyPorterDuff(op Operator, s, d pixfmt.Pixel) (r, g, b, a uint8) {
	sr, sg, sb, sa := s.R, s.G, s.B, s.A
	dr, dg, db, da := d.R, d.G, d.B, d.A

	switch op {
	case Clear:
		return 0, 0, 0, 0
	case Source:
		return sr, sg, sb, sa
	case Destination:
		return dr, dg, db, da
	case SourceOver:
		invSa := 255 - sa
		return addClamp255(sr, mulDiv255(dr, invSa)),
			addClamp255(sg, mulDiv255(dg, invSa)),
			addClamp255(sb, mulDiv255(db, invSa)),
			unionAlpha(sa, da)
	case DestinationOver:
		invDa := 255 - da
		return addClamp255(mulDiv255(sr, invDa), dr),
			addClamp255(mulDiv255(sg, invDa), dg),
			addClamp255(mulDiv255(sb, invDa), db),
			unionAlpha(sa, da)
	case SourceIn:
		return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
	case DestinationIn:
		return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
	case SourceOut:
		invDa := 255 - da
		return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
	case DestinationOut:
		invSa := 255 - sa
		return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
	case SourceAtop:
		invSa := 255 - sa
		return addClamp255(mulDiv255(sr, da), mulDiv255(dr, invSa)),
			addClamp255(mulDiv255(sg, da), mulDiv255(dg, invSa)),
			addClamp255(mulDiv255(sb, da), mulDiv255(db, invSa)),
			da
	case DestinationAtop:
		invDa := 255 - da
		return addClamp255(mulDiv255(sr, invDa), mulDiv255(dr, sa)),
			addClamp255(mulDiv255(sg, invDa), mulDiv255(dg, sa)),
			addClamp255(mulDiv255(sb, invDa), mulDiv255(db, sa)),
			sa
	case Xor:
		invDa := 255 - da
		invSa := 255 - sa
		return addClamp255(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
			addClamp255(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
			addClamp255(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
			addClamp255(mulDiv255(sa, invDa), mulDiv255(da, invSa))
	default: // Plus
		return addClamp255(sr, dr), addClamp255(sg, dg), addClamp255(sb, db), addClamp255(sa, da)
	}
}

// applySeparableBlend applies the standard W3C compositing formula
// around a per-channel blend function:
//
//	result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Sc, Dc)
//
// where B operates on unpremultiplied channels.
func applySeparableBlend(op Operator, s, d pixfmt.Pixel) (r, g, b, a uint8) {
	sr, sg, sb, sa := s.R, s.G, s.B, s.A
	dr, dg, db, da := d.R, d.G, d.B, d.A

	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	var sur, sug, sub, dur, dug, dub uint8
	sur = uint8(uint16(sr) * 255 / uint16(sa))
	sug = uint8(uint16(sg) * 255 / uint16(sa))
	sub = uint8(uint16(sb) * 255 / uint16(sa))
	dur = uint8(uint16(dr) * 255 / uint16(da))
	dug = uint8(uint16(dg) * 255 / uint16(da))
	dub = uint8(uint16(db) * 255 / uint16(da))

	fn := separableBlendFunc(op)
	blendR := fn(sur, dur)
	blendG := fn(sug, dug)
	blendB := fn(sub, dub)

	invSa := 255 - sa
	invDa := 255 - da
	finalA := unionAlpha(sa, da)

	r = addClamp255(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	g = addClamp255(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	b = addClamp255(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	saDa := mulDiv255(sa, da)
	r = addClamp255(r, mulDiv255(saDa, blendR))
	g = addClamp255(g, mulDiv255(saDa, blendG))
	b = addClamp255(b, mulDiv255(saDa, blendB))

	return r, g, b, finalA
}

func separableBlendFunc(op Operator) separableFunc {
	switch op {
	case Multiply:
		return mulDiv255
	case Screen:
		return func(s, d uint8) uint8 {
			return 255 - mulDiv255(255-s, 255-d)
		}
	case Overlay:
		return func(s, d uint8) uint8 {
			// Intermediate products are widened to 32 bits: 2*d alone
			// can reach 510 and the product 2*d*s can reach 130050,
			// past both uint8 and uint16.
			if 2*uint32(d) <= 255 {
				return uint8(2 * uint32(d) * uint32(s) / 255)
			}
			return uint8(255 - 2*uint32(255-d)*uint32(255-s)/255)
		}
	case Darken:
		return minByte
	case Lighten:
		return maxByte
	case HardLight:
		return func(s, d uint8) uint8 {
			// Same 32-bit widening as Overlay, with the predicate on the
			// source channel instead of the destination.
			if 2*uint32(s) <= 255 {
				return uint8(2 * uint32(s) * uint32(d) / 255)
			}
			return uint8(255 - 2*uint32(255-s)*uint32(255-d)/255)
		}
	case Difference:
		return func(s, d uint8) uint8 {
			if s > d {
				return s - d
			}
			return d - s
		}
	default: // Exclusion
		return func(s, d uint8) uint8 {
			sum := uint16(s) + uint16(d)
			product := uint16(mulDiv255(s, d))
			diff := sum - 2*product
			if diff > 255 {
				return 255
			}
			return uint8(diff)
		}
	}
}
