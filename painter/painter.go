// Package painter orchestrates path flattening, fill/stroke outline
// construction, and pixel compositing into the two operations this
// library exposes to a caller: Fill and Stroke.
package painter

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/inkraster/raster2d/compositor"
	"github.com/inkraster/raster2d/fillplot"
	"github.com/inkraster/raster2d/path"
	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/strokeplot"
	"github.com/inkraster/raster2d/wide"
)

// supersampleScale is the grid density paintSupersampled evaluates per
// axis; coverage is the fraction of supersampleScale*supersampleScale
// sub-samples a pixel's area that fall inside the filled region.
const supersampleScale = 4

// Fill paints the region nodes describes, honoring opts.Rule, onto dst
// with pat. Every sub-path in nodes must be closed (end with
// path.ClosePath); an open sub-path returns ErrPathNotClosed rather than
// guessing how to close it.
func Fill(alloc Allocator, dst Surface, pat Pattern, nodes []path.Node, opts FillOptions) error {
	if !path.NodesClosed(nodes) {
		return ErrPathNotClosed
	}
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = path.DefaultTolerance
	}
	subpaths := path.FlattenNodes(nodes, tolerance)
	lines := make([]path.Polyline, len(subpaths))
	for i, sp := range subpaths {
		lines[i] = sp.Points
	}
	ps := fillplot.FromPolylines(lines)
	return paintPolygonSet(alloc, dst, pat, ps, opts.Rule, opts.AntiAlias)
}

// Stroke paints the outline a stroke of opts.Width (plus join, cap, and
// optional dash pattern) traces along nodes, onto dst with pat.
// opts.Transform's linear part must either be the zero value (treated
// as identity) or invertible; a singular non-identity transform returns
// ErrInvalidMatrix since the stroke-width correction it would drive has
// no defined value.
func Stroke(alloc Allocator, dst Surface, pat Pattern, nodes []path.Node, opts StrokeOptions) error {
	if opts.Transform != (f64.Aff3{}) {
		det := opts.Transform[0]*opts.Transform[4] - opts.Transform[1]*opts.Transform[3]
		if det == 0 {
			return ErrInvalidMatrix
		}
	}
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = path.DefaultTolerance
	}
	subpaths := path.FlattenNodes(nodes, tolerance)
	sOpts := opts.toStrokeplot()
	sOpts.Tolerance = tolerance
	ps := strokeplot.Expand(subpaths, sOpts)
	return paintPolygonSet(alloc, dst, pat, ps, fillplot.NonZero, opts.AntiAlias)
}

func paintPolygonSet(alloc Allocator, dst Surface, pat Pattern, ps *fillplot.PolygonSet, rule fillplot.FillRule, antiAlias bool) error {
	if ps.BBox.MinX > ps.BBox.MaxX || ps.BBox.MinY > ps.BBox.MaxY {
		return nil
	}
	if antiAlias && dst.Format() != pixfmt.Alpha1 {
		return paintSupersampled(alloc, dst, pat, ps, rule)
	}
	paintAliased(dst, pat, ps, rule)
	return nil
}

func clampRows(bbox fillplot.BoundingBox, height int) (int, int) {
	minY := int(math.Floor(bbox.MinY))
	maxY := int(math.Ceil(bbox.MaxY))
	if minY < 0 {
		minY = 0
	}
	if maxY > height {
		maxY = height
	}
	return minY, maxY
}

func clampCols(bbox fillplot.BoundingBox, width int) (int, int) {
	minX := int(math.Floor(bbox.MinX))
	maxX := int(math.Ceil(bbox.MaxX))
	if minX < 0 {
		minX = 0
	}
	if maxX > width {
		maxX = width
	}
	return minX, maxX
}

// paintAliased rasterizes ps at exact pixel-center sampling (no partial
// coverage): a pixel is either fully painted with pat's sample or left
// untouched, one scanline at a time.
func paintAliased(dst Surface, pat Pattern, ps *fillplot.PolygonSet, rule fillplot.FillRule) {
	minY, maxY := clampRows(ps.BBox, dst.Height())
	width := dst.Width()
	for y := minY; y < maxY; y++ {
		for _, iv := range ps.EdgesForY(float64(y), rule) {
			x0, x1 := clampInterval(iv, width)
			if x1 <= x0 {
				continue
			}
			if dst.Format() == pixfmt.RGBA {
				paintRowRGBA(dst, pat, x0, y, x1-x0)
			} else {
				paintRowGeneric(dst, pat, x0, y, x1-x0)
			}
		}
	}
}

// clampInterval converts a continuous x-range into the half-open pixel
// index range whose centers (x+0.5) fall inside it, then clips to
// [0, width).
func clampInterval(iv fillplot.Interval, width int) (int, int) {
	x0 := int(math.Ceil(iv.X0 - 0.5))
	x1 := int(math.Ceil(iv.X1 - 0.5))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	return x0, x1
}

func writeRGBABytes(buf []byte, i int, px pixfmt.Pixel) {
	px = px.CopySrc(pixfmt.RGBA)
	off := i * 4
	buf[off], buf[off+1], buf[off+2], buf[off+3] = px.R, px.G, px.B, px.A
}

// paintRowRGBA composites length pixels of pat starting at (x0, y) onto
// an RGBA destination through the planar batch algebra, sampling pat a
// whole wide.LaneWidth lane at a time where the remaining row length
// allows it.
func paintRowRGBA(dst Surface, pat Pattern, x0, y, length int) {
	stride := dst.Stride(x0, y, length)
	if stride.Len == 0 {
		paintRowGeneric(dst, pat, x0, y, length)
		return
	}
	srcBuf := make([]byte, stride.Len*4)
	x := int32(x0)
	i := 0
	for i < stride.Len {
		if stride.Len-i >= wide.LaneWidth {
			vec := pat.GetRGBAVec(x, int32(y))
			for lane := 0; lane < wide.LaneWidth; lane++ {
				writeRGBABytes(srcBuf, i, vec[lane])
				i++
				x++
			}
			continue
		}
		writeRGBABytes(srcBuf, i, pat.GetPixel(x, int32(y)))
		i++
		x++
	}
	ops := []compositor.BatchOp{{
		Operator: compositor.SourceOver,
		Dst:      compositor.NoneOverride(),
		Src:      compositor.FromStride(compositor.Stride{Data: srcBuf, Len: stride.Len}),
	}}
	compositor.RunBatch(ops, stride, int32(x0), int32(y), compositor.Integer)
}

// paintRowGeneric is the per-pixel src-over fallback for non-RGBA
// destination formats, which have no planar batch representation.
func paintRowGeneric(dst Surface, pat Pattern, x0, y, length int) {
	format := dst.Format()
	for i := 0; i < length; i++ {
		x := x0 + i
		src := pat.GetPixel(int32(x), int32(y)).CopySrc(format)
		existing, _ := dst.GetPixel(x, y)
		dst.PutPixel(x, y, pixfmt.SrcOver(existing, src))
	}
}

// paintSupersampled rasterizes ps at supersampleScale*supersampleScale
// sub-samples per pixel, accumulating a per-pixel coverage count that
// scales pat's sample before compositing, the anti-aliased counterpart
// to paintAliased.
func paintSupersampled(alloc Allocator, dst Surface, pat Pattern, ps *fillplot.PolygonSet, rule fillplot.FillRule) error {
	const maxCoverage = supersampleScale * supersampleScale
	minY, maxY := clampRows(ps.BBox, dst.Height())
	minX, maxX := clampCols(ps.BBox, dst.Width())
	if maxY <= minY || maxX <= minX {
		return nil
	}
	cov, err := alloc.Alloc(maxX - minX)
	if err != nil {
		return err
	}

	for y := minY; y < maxY; y++ {
		for i := range cov {
			cov[i] = 0
		}
		for j := 0; j < supersampleScale; j++ {
			// EdgesForY samples at arg+0.5; solve arg so that the actual
			// scanline sampled is y + (j+0.5)/supersampleScale.
			arg := float64(y) + (float64(j)+0.5)/supersampleScale - 0.5
			for _, iv := range ps.EdgesForY(arg, rule) {
				accumulateCoverage(cov, iv, minX, maxX)
			}
		}
		for x := minX; x < maxX; x++ {
			c := cov[x-minX]
			if c == 0 {
				continue
			}
			src := pixfmt.ScaleCoverage(pat.GetPixel(int32(x), int32(y)), c, maxCoverage).CopySrc(dst.Format())
			existing, _ := dst.GetPixel(x, y)
			dst.PutPixel(x, y, pixfmt.SrcOver(existing, src))
		}
	}
	return nil
}

// accumulateCoverage increments cov[x-minX] once for every sub-sample of
// pixel x (in [minX, maxX)) that falls inside iv.
func accumulateCoverage(cov []byte, iv fillplot.Interval, minX, maxX int) {
	x0 := int(math.Floor(iv.X0))
	x1 := int(math.Ceil(iv.X1))
	if x0 < minX {
		x0 = minX
	}
	if x1 > maxX {
		x1 = maxX
	}
	for x := x0; x < x1; x++ {
		for k := 0; k < supersampleScale; k++ {
			sx := float64(x) + (float64(k)+0.5)/supersampleScale
			if sx >= iv.X0 && sx < iv.X1 {
				cov[x-minX]++
			}
		}
	}
}
