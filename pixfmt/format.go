// Package pixfmt defines the six concrete pixel layouts used throughout
// raster2d (RGB, RGBA, Alpha8, Alpha4, Alpha2, Alpha1) and the
// premultiplied-alpha compositing primitives (copySrc, srcOver, dstIn)
// that operate on them.
//
// All composition operates on premultiplied representations. A Pixel is
// a small tagged struct rather than six distinct Go types: the format tag
// selects which channels are meaningful and at what bit depth, following
// the "dynamic dispatch as a switch over a closed enumeration" shape used
// throughout this module (see compositor.Operator for the same idiom).
package pixfmt

import "fmt"

// Format identifies one of the six supported pixel layouts.
type Format uint8

const (
	// RGB is three 8-bit channels with no alpha; treated as fully opaque.
	RGB Format = iota
	// RGBA is four 8-bit channels with premultiplied alpha.
	RGBA
	// Alpha8 is a single 8-bit alpha channel.
	Alpha8
	// Alpha4 is a single 4-bit alpha channel.
	Alpha4
	// Alpha2 is a single 2-bit alpha channel.
	Alpha2
	// Alpha1 is a single 1-bit alpha channel.
	Alpha1
)

func (f Format) String() string {
	switch f {
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	case Alpha8:
		return "alpha8"
	case Alpha4:
		return "alpha4"
	case Alpha2:
		return "alpha2"
	case Alpha1:
		return "alpha1"
	default:
		return fmt.Sprintf("pixfmt.Format(%d)", uint8(f))
	}
}

// IsValid reports whether f is one of the six defined formats.
func (f Format) IsValid() bool {
	return f <= Alpha1
}

// HasAlpha reports whether the format carries a dedicated alpha channel.
// RGB has none and is treated as fully opaque in composition.
func (f Format) HasAlpha() bool {
	return f != RGB
}

// IsAlphaOnly reports whether the format stores a single alpha channel
// (no independent color channels).
func (f Format) IsAlphaOnly() bool {
	return f >= Alpha8
}

// IsPacked reports whether pixels of this format are stored more
// densely than one byte per pixel (Alpha4, Alpha2, Alpha1).
func (f Format) IsPacked() bool {
	return f == Alpha4 || f == Alpha2 || f == Alpha1
}

// Bits returns the bit depth of the format's alpha/coverage channel.
// RGB and RGBA both report 8 (their per-channel depth); the distinction
// between "has independent color" and "is alpha-only" is carried by
// IsAlphaOnly, not by Bits.
func (f Format) Bits() int {
	switch f {
	case Alpha4:
		return 4
	case Alpha2:
		return 2
	case Alpha1:
		return 1
	default:
		return 8
	}
}

// Max returns the maximum representable channel value for the format,
// i.e. (1<<bits)-1. This is the Opaque alpha value for alpha-only formats.
func (f Format) Max() uint32 {
	return uint32(1)<<uint(f.Bits()) - 1
}

// Opaque returns the all-ones pixel for the format: fully opaque white
// for RGB/RGBA (color channels at full value, alpha at Max), or the
// all-ones alpha value for alpha-only formats.
func (f Format) Opaque() Pixel {
	m := uint8(f.Max())
	switch f {
	case RGB:
		return Pixel{Format: RGB, R: 255, G: 255, B: 255, A: 255}
	case RGBA:
		return Pixel{Format: RGBA, R: 255, G: 255, B: 255, A: 255}
	default:
		return Pixel{Format: f, A: m}
	}
}

// Clear returns the all-zero (transparent black) pixel for the format.
func (f Format) Clear() Pixel {
	return Pixel{Format: f}
}

// Channels returns the number of distinct channels physically stored
// per pixel (3 for RGB, 4 for RGBA, 1 for the alpha formats).
func (f Format) Channels() int {
	switch f {
	case RGB:
		return 3
	case RGBA:
		return 4
	default:
		return 1
	}
}
