package strokeplot

import (
	"math"

	"github.com/inkraster/raster2d/fillplot"
	"github.com/inkraster/raster2d/path"
)

// Expand walks each flattened sub-path and emits the filled outline
// stroking it at opts.Width would cover, as a single fillplot.PolygonSet
// meant to be filled with the non-zero rule. Dashing, if opts.Dash
// describes a non-trivial pattern, splits a sub-path into on-segments
// before outline expansion; each resulting run is treated exactly like an
// ordinary open (or closed, for an undashed closed sub-path) sub-path.
func Expand(subpaths []path.Subpath, opts Options) *fillplot.PolygonSet {
	r := resolve(opts)
	ps := fillplot.NewPolygonSet()

	for _, sp := range subpaths {
		pts := dedupe(sp.Points)
		if sp.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 2 {
			if len(pts) == 1 && r.cap != CapButt {
				addDot(ps, pts[0], r)
			}
			continue
		}

		if opts.Dash != nil && opts.Dash.valid() {
			for _, run := range dashRuns(pts, sp.Closed, *opts.Dash) {
				expandRun(ps, run.points, false, r)
			}
			continue
		}

		expandRun(ps, pts, sp.Closed, r)
	}

	return ps
}

// dedupe drops consecutive duplicate vertices (zero-length segments
// confuse normal computation) while preserving endpoints.
func dedupe(pts path.Polyline) path.Polyline {
	if len(pts) == 0 {
		return pts
	}
	out := path.Polyline{pts[0]}
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// expandRun builds the left and right offset contours for one open or
// closed polyline and appends the resulting polygon(s) to ps.
func expandRun(ps *fillplot.PolygonSet, pts path.Polyline, closed bool, r resolved) {
	if len(pts) < 2 {
		if len(pts) == 1 && r.cap != CapButt {
			addDot(ps, pts[0], r)
		}
		return
	}
	if closed && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return
	}

	segs := segments(pts, closed)
	if len(segs) == 0 {
		return
	}

	left, right := offsetContours(segs, closed, r)

	poly := fillplot.NewPolygon()
	for _, p := range left {
		poly.AddVertex(p)
	}
	if closed {
		ps.AddPolygon(poly)
		rightPoly := fillplot.NewPolygon()
		for i := len(right) - 1; i >= 0; i-- {
			rightPoly.AddVertex(right[i])
		}
		ps.AddPolygon(rightPoly)
		return
	}

	// Open path: one ring walking out along the left side, around the
	// end cap, back along the right side (reversed), around the start
	// cap, closing the polygon.
	endCap := capPoints(pts[len(pts)-2], pts[len(pts)-1], r)
	for _, p := range endCap {
		poly.AddVertex(p)
	}
	for i := len(right) - 1; i >= 0; i-- {
		poly.AddVertex(right[i])
	}
	startCap := capPoints(pts[1], pts[0], r)
	for _, p := range startCap {
		poly.AddVertex(p)
	}
	ps.AddPolygon(poly)
}

type segment struct {
	a, b   path.Point
	normal path.Point // unit outward normal (left side), perpendicular to tangent
}

// segments returns each consecutive vertex pair's geometry. For a closed
// path the closing segment (last -> first) is included.
func segments(pts path.Polyline, closed bool) []segment {
	n := len(pts)
	count := n - 1
	if closed {
		count = n
	}
	segs := make([]segment, 0, count)
	for i := 0; i < count; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		tangent := normalize(sub(b, a))
		segs = append(segs, segment{a: a, b: b, normal: perp(tangent)})
	}
	return segs
}

// offsetContours returns the left (outward-normal) and right
// (inward-normal) offset contours for segs, with a join inserted at each
// interior vertex (and, for a closed path, at the wrap-around vertex).
func offsetContours(segs []segment, closed bool, r resolved) (left, right path.Polyline) {
	n := len(segs)
	for i, s := range segs {
		off := scale(s.normal, r.halfWidth)
		left = append(left, add(s.a, off))
		left = append(left, add(s.b, off))
		right = append(right, sub(s.a, off))
		right = append(right, sub(s.b, off))

		nextIdx := i + 1
		hasNext := nextIdx < n || closed
		if !hasNext {
			continue
		}
		next := segs[nextIdx%n]
		joinL := join(s, next, r, +1)
		joinR := join(s, next, r, -1)
		left = append(left, joinL...)
		right = append(right, joinR...)
	}
	return left, right
}

// join returns the extra vertices needed between segment a and segment b
// on one side (side=+1 outward/left, side=-1 inward/right) to connect
// their offset contours per the configured join mode.
func join(a, b segment, r resolved, side float64) path.Polyline {
	turn := cross(a.normal, b.normal)
	// This side is the outer (convex) side only when the path turns away
	// from it; on the side the path turns toward, the segments' own offset
	// contours already overlap and need no extra geometry.
	if turn*side >= 0 {
		return nil
	}

	switch r.join {
	case JoinRound:
		return roundJoinArc(a, b, r, side)
	case JoinBevel:
		return nil
	default: // JoinMiter
		return miterJoin(a, b, r, side)
	}
}

func miterJoin(a, b segment, r resolved, side float64) path.Polyline {
	cosHalf := dot(a.normal, b.normal)
	cosHalf = (1 + cosHalf) / 2
	if cosHalf <= 0 {
		return nil
	}
	// cosHalf is cos²(t/2) for the turn angle t between the normals,
	// which is sin²(θ/2) for the interior angle θ = π - t.
	sinHalf := math.Sqrt(cosHalf)
	if sinHalf < 1e-9 || 1/sinHalf > r.miterLimit {
		return nil // falls back to bevel (no extra vertex)
	}

	bisector := normalize(add(a.normal, b.normal))
	miterLen := r.halfWidth / sinHalf
	apex := add(a.b, scale(bisector, side*miterLen))
	return path.Polyline{apex}
}

// roundJoinArc approximates the circular arc swept by the offset
// normal from a's to b's direction, fanned out to the stroke tolerance.
func roundJoinArc(a, b segment, r resolved, side float64) path.Polyline {
	startAngle := math.Atan2(side*a.normal.Y, side*a.normal.X)
	endAngle := math.Atan2(side*b.normal.Y, side*b.normal.X)
	span := endAngle - startAngle
	for span <= -math.Pi {
		span += 2 * math.Pi
	}
	for span > math.Pi {
		span -= 2 * math.Pi
	}

	steps := arcSteps(r.halfWidth, span, r.tolerance)
	out := make(path.Polyline, 0, steps)
	for i := 1; i < steps; i++ {
		a0 := startAngle + span*float64(i)/float64(steps)
		out = append(out, path.Point{
			X: a.b.X + r.halfWidth*math.Cos(a0),
			Y: a.b.Y + r.halfWidth*math.Sin(a0),
		})
	}
	return out
}

// arcSteps returns a fan-out segment count keeping each chord within
// tolerance of the true arc of the given radius and angular span.
func arcSteps(radius, span, tolerance float64) int {
	span = math.Abs(span)
	if span == 0 || radius <= 0 {
		return 1
	}
	if tolerance <= 0 {
		tolerance = 0.1
	}
	maxStepAngle := 2 * math.Acos(math.Max(0, 1-tolerance/radius))
	if maxStepAngle <= 0 {
		maxStepAngle = span
	}
	n := int(math.Ceil(span / maxStepAngle))
	if n < 1 {
		n = 1
	}
	return n
}

// capPoints returns the extra vertices (not including the endpoint
// itself, which the caller already appended via the contour) needed to
// cap an open path's end. from is the vertex before the endpoint,
// giving the outward tangent direction; to is the endpoint.
func capPoints(from, to path.Point, r resolved) path.Polyline {
	tangent := normalize(sub(to, from))
	n := perp(tangent)
	left := add(to, scale(n, r.halfWidth))
	right := sub(to, scale(n, r.halfWidth))

	switch r.cap {
	case CapSquare:
		ext := scale(tangent, r.halfWidth)
		return path.Polyline{add(left, ext), add(right, ext)}
	case CapRound:
		startAngle := math.Atan2(left.Y-to.Y, left.X-to.X)
		endAngle := math.Atan2(right.Y-to.Y, right.X-to.X)
		span := endAngle - startAngle
		if span > 0 {
			span -= 2 * math.Pi
		}
		steps := arcSteps(r.halfWidth, span, r.tolerance)
		out := make(path.Polyline, 0, steps+1)
		for i := 0; i <= steps; i++ {
			a := startAngle + span*float64(i)/float64(steps)
			out = append(out, path.Point{X: to.X + r.halfWidth*math.Cos(a), Y: to.Y + r.halfWidth*math.Sin(a)})
		}
		return out
	default: // CapButt
		return nil
	}
}

// addDot emits a zero-length on-segment's dot (round cap) or square
// (square/butt cap) centered at p.
func addDot(ps *fillplot.PolygonSet, p path.Point, r resolved) {
	poly := fillplot.NewPolygon()
	if r.cap == CapRound {
		const steps = 16
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			poly.AddVertex(path.Point{X: p.X + r.halfWidth*math.Cos(a), Y: p.Y + r.halfWidth*math.Sin(a)})
		}
	} else {
		poly.AddVertex(path.Point{X: p.X - r.halfWidth, Y: p.Y - r.halfWidth})
		poly.AddVertex(path.Point{X: p.X + r.halfWidth, Y: p.Y - r.halfWidth})
		poly.AddVertex(path.Point{X: p.X + r.halfWidth, Y: p.Y + r.halfWidth})
		poly.AddVertex(path.Point{X: p.X - r.halfWidth, Y: p.Y + r.halfWidth})
	}
	ps.AddPolygon(poly)
}
