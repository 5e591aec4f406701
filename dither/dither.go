// Package dither implements the two ordered-dither threshold matrices
// applied when writing a linear-RGB color sample into a reduced-bit-depth
// surface: a Bayer 8x8 matrix and a 64x64 dispersed-threshold matrix used
// in place of a precomputed blue-noise texture.
package dither

import (
	"github.com/inkraster/raster2d/color"
	"github.com/inkraster/raster2d/pixfmt"
)

// Type selects which threshold matrix Threshold and Sample use.
type Type uint8

const (
	Bayer8x8 Type = iota
	BlueNoise64x64
)

var bayerMatrix [8][8]float32
var blueNoiseMatrix [64][64]float32

func init() {
	for j := uint32(0); j < 8; j++ {
		for i := uint32(0); i < 8; i++ {
			bayerMatrix[j][i] = bayerThreshold(i, j)
		}
	}
	for y := uint32(0); y < 64; y++ {
		for x := uint32(0); x < 64; x++ {
			blueNoiseMatrix[y][x] = blueNoiseThreshold(x, y)
		}
	}
}

// bayerThreshold computes the normalized Bayer 8x8 threshold at (i,j):
// interleave the low three bits of i and of (i^j) into a 6-bit Morton
// index (i in the even bit positions, i^j in the odd), bit-reverse it to
// land the index M in [0,63] with the matrix's characteristic dispersed
// ordering, then normalize to (M*2-63)/128.
func bayerThreshold(i, j uint32) float32 {
	i &= 7
	w := (i ^ j) & 7
	var v uint32
	for b := uint32(0); b < 3; b++ {
		v |= ((i >> b) & 1) << (2 * b)
		v |= ((w >> b) & 1) << (2*b + 1)
	}
	v = reverseBits(v, 6)
	return (float32(v)*2 - 63) / 128
}

// blueNoiseThreshold computes a deterministic, full-period dispersed
// threshold over a 64x64 tile via a bit-reversal permutation of the
// flat tile index: every index in [0,4095] occurs exactly once, with no
// structured low-frequency bias along either axis. True void-and-cluster
// optimized blue noise requires an offline search over a reference
// texture; this is the synthesized stand-in described for that role.
func blueNoiseThreshold(x, y uint32) float32 {
	idx := (y&63)*64 + (x & 63)
	m := reverseBits(idx, 12)
	return (float32(m)*2 - 4095) / 8192
}

func reverseBits(v uint32, bits int) uint32 {
	var r uint32
	for b := 0; b < bits; b++ {
		r |= ((v >> uint(b)) & 1) << uint(bits-1-b)
	}
	return r
}

// Threshold returns the normalized dither threshold for device pixel
// (x,y) under matrix t, in roughly [-0.5, 0.5].
func Threshold(t Type, x, y int32) float32 {
	ix := uint32(x)
	iy := uint32(y)
	if t == Bayer8x8 {
		return bayerMatrix[iy&7][ix&7]
	}
	return blueNoiseMatrix[iy&63][ix&63]
}

// Sample dithers linear-RGB color c, sampled at device pixel (x,y), into
// format: each dithered channel is nudged by threshold/(format.Max()),
// clamped to [0,1], then re-encoded via a direct rescale. Alpha-only
// formats dither the alpha (coverage) channel directly; RGB/RGBA formats
// dither every color channel and re-encode through color.Linear.ToPixel.
func Sample(c color.Linear, t Type, x, y int32, format pixfmt.Format) pixfmt.Pixel {
	noise := Threshold(t, x, y) / float32(format.Max())

	if format.IsAlphaOnly() {
		v := clampUnit(c.A + noise)
		return pixfmt.Pixel{Format: format, A: uint8(v*float32(format.Max()) + 0.5)}
	}

	adjusted := color.Linear{
		R: clampUnit(c.R + noise),
		G: clampUnit(c.G + noise),
		B: clampUnit(c.B + noise),
		A: c.A,
	}
	return adjusted.ToPixel(format)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
