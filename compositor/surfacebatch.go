package compositor

import (
	"errors"

	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/surface"
)

// ErrUnsupportedFormat is returned by RunSurfaceBatch when dst isn't an
// RGBA surface: the planar batch algebra and its blend-mode formulas are
// defined in premultiplied RGBA terms; other pixel formats composite
// through Surface.SrcOver/Surface.DstIn's simpler per-format pixel path
// instead.
var ErrUnsupportedFormat = errors.New("compositor: surface batch requires an RGBA destination")

// StrideOf returns a Stride view over length pixels of RGBA surface s at
// (x, y), clipped to s's width and aliasing s's backing bytes directly (no
// copy). Returns a zero Stride if s isn't RGBA, y is out of range, or the
// clipped length is non-positive.
func StrideOf(s *surface.Surface, x, y, length int) Stride {
	if s.Format() != pixfmt.RGBA || y < 0 || y >= s.Height() || x < 0 || length <= 0 {
		return Stride{}
	}
	if max := s.Width() - x; length > max {
		length = max
	}
	if length <= 0 {
		return Stride{}
	}
	off := y*s.RowStride() + x*4
	data := s.Data()[off : off+length*4]
	return Stride{Data: data, Len: length}
}

// RunSurfaceBatch applies ops to dst at device offset (dstX, dstY). The
// first operation's Src determines the source bounding box
// (OverrideSurface -> that surface's own dimensions; any other kind ->
// dst's dimensions, and the whole batch no-ops unless (dstX, dstY) is
// (0,0)); negative offsets clip the source start, and extents exceeding
// dst clip the length. The batch auto-promotes to Float precision if any
// operator requires it.
func RunSurfaceBatch(dst *surface.Surface, ops []BatchOp, dstX, dstY int) error {
	if len(ops) == 0 {
		return nil
	}
	if dst.Format() != pixfmt.RGBA {
		return ErrUnsupportedFormat
	}

	var srcW, srcH int
	var srcSurface *surface.Surface
	if ov := ops[0].Src; ov.Kind == OverrideSurface {
		s, ok := ov.Surface.(*surface.Surface)
		if !ok {
			return ErrUnsupportedFormat
		}
		srcSurface = s
		srcW, srcH = s.Width(), s.Height()
	} else {
		if dstX != 0 || dstY != 0 {
			return nil
		}
		srcW, srcH = dst.Width(), dst.Height()
	}

	srcX0, srcY0 := 0, 0
	startX, startY := dstX, dstY
	if startX < 0 {
		srcX0 = -startX
		startX = 0
	}
	if startY < 0 {
		srcY0 = -startY
		startY = 0
	}

	w := srcW - srcX0
	h := srcH - srcY0
	if startX+w > dst.Width() {
		w = dst.Width() - startX
	}
	if startY+h > dst.Height() {
		h = dst.Height() - startY
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	precision := Integer
	if RequiresFloat(ops) {
		precision = Float
	}

	rowOps := make([]BatchOp, len(ops))
	for row := 0; row < h; row++ {
		dy := startY + row
		sy := srcY0 + row
		copy(rowOps, ops)
		for k := range rowOps {
			rowOps[k].Src = resolveRowOverride(rowOps[k].Src, srcSurface, srcX0, sy, startX, dy, w)
			rowOps[k].Dst = resolveRowOverride(rowOps[k].Dst, srcSurface, srcX0, sy, startX, dy, w)
		}
		RunBatch(rowOps, StrideOf(dst, startX, dy, w), int32(startX), int32(dy), precision)
	}
	return nil
}

// resolveRowOverride rewrites ov for one destination row: an
// OverrideSurface becomes the concrete row slice of srcSurface,
// Gradient/Dither overrides are re-anchored at this row's device
// coordinates, and every other kind passes through unchanged.
func resolveRowOverride(ov Override, srcSurface *surface.Surface, srcX, srcY, dstX, dstY, length int) Override {
	switch ov.Kind {
	case OverrideSurface:
		return FromStride(StrideOf(srcSurface, srcX, srcY, length))
	case OverrideGradient:
		ov.AnchorX, ov.AnchorY = int32(dstX), int32(dstY)
		return ov
	case OverrideDither:
		ov.AnchorX, ov.AnchorY = int32(dstX), int32(dstY)
		if ov.Inner != nil {
			inner := resolveRowOverride(*ov.Inner, srcSurface, srcX, srcY, dstX, dstY, length)
			ov.Inner = &inner
		}
		return ov
	default:
		return ov
	}
}
