package compositor

import (
	"github.com/inkraster/raster2d/color"
	"github.com/inkraster/raster2d/dither"
	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/wide"
)

// Precision selects the scratch representation a Batch evaluates in.
type Precision uint8

const (
	// Integer evaluates per-channel u16 scratch; color channels stay
	// <= 255 after every operation. Float-only operators degrade to Clear.
	Integer Precision = iota
	// Float evaluates per-channel f32 in linear space; intermediate
	// values may exceed the 0..1 normal range until the final write-back.
	Float
)

// OverrideKind tags which of the batch-operand shapes an Override carries.
type OverrideKind uint8

const (
	// OverrideNone reuses the running intermediate value. For a BatchOp's
	// Src this is only meaningful from the second operation on; the first
	// operation's Src must not be None.
	OverrideNone OverrideKind = iota
	// OverridePixel broadcasts a single pixel to every stride position.
	OverridePixel
	// OverrideStride reads a row slice of another surface.
	OverrideStride
	// OverrideSurface is only valid as the first operation's Src at the
	// surface level: it names the whole source surface so RunSurfaceBatch
	// can derive the source bounding box, then resolves to a per-row
	// OverrideStride before reaching RunBatch.
	OverrideSurface
	// OverrideGradient samples a GradientSource anchored at a device-space
	// offset, advancing one device pixel per stride position.
	OverrideGradient
	// OverrideDither wraps an inner source and perturbs its linear-RGB
	// sample by a threshold-matrix value scaled to DitherFormat's depth.
	OverrideDither
)

// GradientSource is the subset of gradient.Gradient a Batch samples: an
// offset function plus stop search, matching this package's own copy of
// the interface so compositor never needs to import gradient for a type
// it only consumes structurally.
type GradientSource interface {
	Offset(x, y float32) float32
	SearchInStops(offset float32) (c0, c1 color.Linear, local float32)
}

// Surface is the subset of surface.Surface an OverrideSurface needs: only
// read access to pixel data, resolved into a Stride per row by
// RunSurfaceBatch. Kept as a local interface (rather than importing the
// surface package's concrete type here) so compositor's core batch algebra
// has no dependency on the surface package; RunSurfaceBatch, which does
// need concrete row access, lives in surfacebatch.go where that import is
// unavoidable.
type Surface interface {
	Width() int
	Height() int
}

// Override supplies one BatchOp operand.
type Override struct {
	Kind    OverrideKind
	Pixel   pixfmt.Pixel
	Stride  Stride
	Surface Surface

	Gradient         GradientSource
	AnchorX, AnchorY int32

	DitherType   dither.Type
	DitherFormat pixfmt.Format
	Inner        *Override
}

// NoneOverride reuses the running intermediate value.
func NoneOverride() Override { return Override{Kind: OverrideNone} }

// PixelOverride broadcasts px to every position in the batch.
func PixelOverride(px pixfmt.Pixel) Override { return Override{Kind: OverridePixel, Pixel: px} }

// FromStride reads from s.
func FromStride(s Stride) Override { return Override{Kind: OverrideStride, Stride: s} }

// FromSurface names a whole source surface; valid only as the first
// operation's Src in a surface-level batch.
func FromSurface(s Surface) Override { return Override{Kind: OverrideSurface, Surface: s} }

// FromGradient samples g in device space starting at (x, y), advancing
// one device pixel per stride position.
func FromGradient(g GradientSource, x, y int32) Override {
	return Override{Kind: OverrideGradient, Gradient: g, AnchorX: x, AnchorY: y}
}

// Dithered wraps inner with threshold noise scaled to format's bit depth.
func Dithered(inner Override, t dither.Type, format pixfmt.Format) Override {
	return Override{Kind: OverrideDither, Inner: &inner, DitherType: t, DitherFormat: format}
}

// BatchOp is one {operator, dst-override, src-override} triple; a Batch is
// an ordered slice of these.
type BatchOp struct {
	Operator Operator
	Dst      Override
	Src      Override
}

func readStridePixel(s Stride, i int) pixfmt.Pixel {
	if i < 0 || i >= s.Len {
		return pixfmt.Pixel{Format: pixfmt.RGBA}
	}
	off := i * 4
	return pixfmt.Pixel{Format: pixfmt.RGBA, R: s.Data[off], G: s.Data[off+1], B: s.Data[off+2], A: s.Data[off+3]}
}

func writeStridePixel(s Stride, i int, px pixfmt.Pixel) {
	off := i * 4
	s.Data[off], s.Data[off+1], s.Data[off+2], s.Data[off+3] = px.R, px.G, px.B, px.A
}

func sampleGradient(g GradientSource, x, y float32) color.Linear {
	t := g.Offset(x, y)
	c0, c1, local := g.SearchInStops(t)
	return c0.Lerp(c1, local)
}

// resolvePixel resolves ov at stride position i in integer precision,
// given the running intermediate value. Gradient and dither overrides
// sample at their own anchor (device x = ov.AnchorX+i, y = ov.AnchorY);
// baseX and baseY do not change the sample position.
func resolvePixel(ov Override, i int, baseX, baseY int32, running pixfmt.Pixel) pixfmt.Pixel {
	switch ov.Kind {
	case OverridePixel:
		return ov.Pixel.CopySrc(pixfmt.RGBA)
	case OverrideStride:
		return readStridePixel(ov.Stride, i)
	case OverrideGradient:
		x := float32(ov.AnchorX) + float32(i)
		return sampleGradient(ov.Gradient, x, float32(ov.AnchorY)).ToPixel(pixfmt.RGBA)
	case OverrideDither:
		x := ov.AnchorX + int32(i)
		inner := resolvePixel(*ov.Inner, i, ov.AnchorX, ov.AnchorY, running)
		px := dither.Sample(color.FromPixel(inner), ov.DitherType, x, ov.AnchorY, ov.DitherFormat)
		return px.CopySrc(pixfmt.RGBA)
	default: // OverrideNone, OverrideSurface (resolved before reaching here)
		return running
	}
}

// resolveLinear is resolvePixel's float-precision counterpart: every
// operand is decoded into color.Linear instead of rounding through
// 8-bit pixfmt.Pixel, so values outside [0,1] survive across operations.
func resolveLinear(ov Override, i int, baseX, baseY int32, running color.Linear) color.Linear {
	switch ov.Kind {
	case OverridePixel:
		return color.FromPixel(ov.Pixel)
	case OverrideStride:
		return color.FromPixel(readStridePixel(ov.Stride, i))
	case OverrideGradient:
		x := float32(ov.AnchorX) + float32(i)
		return sampleGradient(ov.Gradient, x, float32(ov.AnchorY))
	case OverrideDither:
		x := ov.AnchorX + int32(i)
		inner := resolveLinear(*ov.Inner, i, ov.AnchorX, ov.AnchorY, running)
		px := dither.Sample(inner, ov.DitherType, x, ov.AnchorY, ov.DitherFormat)
		return color.FromPixel(px)
	default:
		return running
	}
}

// RunBatch executes ops in order over dst, a stride at device position
// (baseX, baseY). Gradient/Dither overrides sample from their own anchor
// (AnchorX, AnchorY), not from (baseX, baseY), and advance one device
// pixel per stride position. This is the stride-level API: precision is a
// required parameter and is never auto-promoted (RunSurfaceBatch promotes
// for its callers; this one trusts the caller's choice).
//
// Per position i: the running value seeds from dst's current contents;
// each operation resolves its Src (None reuses the running value; the
// first operation's Src must not be None) and Dst (None also reuses the
// running value) operands and evaluates dst <- op(dst, src); after the
// last operation the running value is written back to dst at i.
//
// In integer precision the stride is processed as full wide.LaneWidth
// chunks through a planar wide.Batch — the running value lives in the
// batch's destination channels, each operation's overrides load into the
// source (and, when overridden, destination) lanes, and applyBatch
// evaluates the operator across all lanes (Porter-Duff operators as one
// per-channel vector formula, separable blend modes lane by lane)
// — followed by the remaining positions through the identical scalar
// formulas. Float precision stays per-pixel: same rule as RunStride,
// there is no batched float path.
func RunBatch(ops []BatchOp, dst Stride, baseX, baseY int32, precision Precision) {
	if len(ops) == 0 {
		return
	}
	if precision == Float {
		for i := 0; i < dst.Len; i++ {
			running := color.FromPixel(readStridePixel(dst, i))
			for _, op := range ops {
				src := resolveLinear(op.Src, i, baseX, baseY, running)
				d := resolveLinear(op.Dst, i, baseX, baseY, running)
				running = ApplyLinear(op.Operator, d, src)
			}
			writeStridePixel(dst, i, running.ToPixel(pixfmt.RGBA))
		}
		return
	}

	n := dst.Len
	batched := n - n%wide.LaneWidth
	var b wide.Batch
	for pos := 0; pos < batched; pos += wide.LaneWidth {
		b.LoadDst(dst.Data[pos*4:])
		for _, op := range ops {
			loadSrcLanes(&b, op.Src, pos, baseX, baseY)
			loadDstLanes(&b, op.Dst, pos, baseX, baseY)
			applyBatch(op.Operator, &b)
		}
		b.StoreDst(dst.Data[pos*4:])
	}

	for i := batched; i < n; i++ {
		running := readStridePixel(dst, i)
		for _, op := range ops {
			src := resolvePixel(op.Src, i, baseX, baseY, running)
			d := resolvePixel(op.Dst, i, baseX, baseY, running)
			running = Apply(op.Operator, d, src)
		}
		writeStridePixel(dst, i, running)
	}
}

// laneRunning reconstructs lane's running pixel from the batch's
// destination channels, the value OverrideNone and a dither override's
// inner None source resolve to.
func laneRunning(b *wide.Batch, lane int) pixfmt.Pixel {
	return pixfmt.Pixel{
		Format: pixfmt.RGBA,
		R:      uint8(b.DR[lane]),
		G:      uint8(b.DG[lane]),
		B:      uint8(b.DB[lane]),
		A:      uint8(b.DA[lane]),
	}
}

// loadSrcLanes fills b's source channels with ov resolved at stride
// positions pos..pos+LaneWidth-1. A pixel override splats, a fully
// in-range stride override bulk-loads, and everything else (gradient,
// dither, partially clipped strides) transposes lane by lane through the
// same resolvePixel the scalar remainder uses.
func loadSrcLanes(b *wide.Batch, ov Override, pos int, baseX, baseY int32) {
	switch ov.Kind {
	case OverrideNone:
		b.SR, b.SG, b.SB, b.SA = b.DR, b.DG, b.DB, b.DA
	case OverridePixel:
		px := ov.Pixel.CopySrc(pixfmt.RGBA)
		b.SR = wide.SplatU16(uint16(px.R))
		b.SG = wide.SplatU16(uint16(px.G))
		b.SB = wide.SplatU16(uint16(px.B))
		b.SA = wide.SplatU16(uint16(px.A))
	case OverrideStride:
		if pos+wide.LaneWidth <= ov.Stride.Len {
			b.LoadSrc(ov.Stride.Data[pos*4:])
			return
		}
		fallthrough
	default:
		for lane := 0; lane < wide.LaneWidth; lane++ {
			px := resolvePixel(ov, pos+lane, baseX, baseY, laneRunning(b, lane))
			b.SR[lane], b.SG[lane], b.SB[lane], b.SA[lane] = uint16(px.R), uint16(px.G), uint16(px.B), uint16(px.A)
		}
	}
}

// loadDstLanes overwrites b's destination channels with ov resolved at
// stride positions pos..pos+LaneWidth-1; OverrideNone leaves the running
// value already there untouched. Each lane reads its running value
// before overwriting it, matching the scalar order of resolving both
// operands from the same running pixel.
func loadDstLanes(b *wide.Batch, ov Override, pos int, baseX, baseY int32) {
	if ov.Kind == OverrideNone {
		return
	}
	for lane := 0; lane < wide.LaneWidth; lane++ {
		px := resolvePixel(ov, pos+lane, baseX, baseY, laneRunning(b, lane))
		b.DR[lane], b.DG[lane], b.DB[lane], b.DA[lane] = uint16(px.R), uint16(px.G), uint16(px.B), uint16(px.A)
	}
}

// RequiresFloat reports whether any operator in ops needs float precision,
// the condition RunSurfaceBatch uses to auto-promote a whole batch.
func RequiresFloat(ops []BatchOp) bool {
	for _, op := range ops {
		if op.Operator.RequiresFloat() {
			return true
		}
	}
	return false
}
