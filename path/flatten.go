package path

import "math"

// Polyline is one flattened sub-path: a sequence of straight-line
// vertices starting at the sub-path's MoveTo point. A ClosePath node
// repeats the first vertex at the end.
type Polyline []Point

// Flatten walks the path's node list and converts every CurveTo into
// straight-line segments within tolerance, returning one Polyline per
// sub-path (split on MoveTo).
func Flatten(p *Path) []Polyline {
	lines, _ := flattenNodes(p.Nodes(), p.Tolerance())
	return lines
}

// Subpath is one flattened sub-path plus whether it ended in ClosePath —
// the distinction the stroke plotter needs to decide between joining the
// last vertex back to the first (closed) and emitting end caps (open).
type Subpath struct {
	Points Polyline
	Closed bool
}

// FlattenSubpaths is Flatten plus per-sub-path closedness, the shape
// strokeplot.Expand consumes.
func FlattenSubpaths(p *Path) []Subpath {
	lines, closed := flattenNodes(p.Nodes(), p.Tolerance())
	out := make([]Subpath, len(lines))
	for i, l := range lines {
		out[i] = Subpath{Points: l, Closed: closed[i]}
	}
	return out
}

// FlattenNodes is FlattenSubpaths for a raw node list plus an explicit
// tolerance, the shape painter.Fill and painter.Stroke need since they
// receive []Node directly rather than a *Path.
func FlattenNodes(nodes []Node, tolerance float64) []Subpath {
	if tolerance < MinTolerance {
		tolerance = MinTolerance
	}
	lines, closed := flattenNodes(nodes, tolerance)
	out := make([]Subpath, len(lines))
	for i, l := range lines {
		out[i] = Subpath{Points: l, Closed: closed[i]}
	}
	return out
}

func flattenNodes(nodes []Node, tolerance float64) ([]Polyline, []bool) {
	var result []Polyline
	var closed []bool
	var current Polyline
	var from Point
	var currentClosed bool

	flushCurrent := func() {
		if len(current) > 0 {
			result = append(result, current)
			closed = append(closed, currentClosed)
		}
	}

	for _, n := range nodes {
		switch n.Kind {
		case MoveTo:
			flushCurrent()
			current = Polyline{n.To}
			currentClosed = false
			from = n.To
		case LineTo:
			current = append(current, n.To)
			from = n.To
		case CurveTo:
			current = append(current, flattenCubic(from, n.Control1, n.Control2, n.To, tolerance)...)
			from = n.To
		case ClosePath:
			if len(current) > 0 && current[len(current)-1] != current[0] {
				current = append(current, current[0])
			}
			currentClosed = true
			if len(current) > 0 {
				from = current[0]
			}
		}
	}
	flushCurrent()
	return result, closed
}

// flattenCubic adaptively subdivides the cubic Bézier (p0,p1,p2,p3) and
// returns the line-segment endpoints following p0 (p0 itself is not
// included, matching how Flatten threads endpoints between nodes).
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	if isCollinear(p0, p1, p2, p3) {
		return []Point{p3}
	}
	var points []Point
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

// maxFlattenDepth bounds recursion against pathological control points
// (e.g. near-infinite curvature) that would otherwise never satisfy the
// tolerance test.
const maxFlattenDepth = 24

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	dist := math.Max(d1, d2)

	if dist < tolerance || depth >= maxFlattenDepth {
		*points = append(*points, p3)
		return
	}

	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// isCollinear reports whether a cubic's three control legs (p0->p1,
// p1->p2, p2->p3) lie on a single line, the degenerate case that
// short-circuits flattening to a single line-to.
func isCollinear(p0, p1, p2, p3 Point) bool {
	const epsilon = 1e-9
	return cross(p0, p1, p3) < epsilon && cross(p0, p1, p3) > -epsilon &&
		cross(p0, p2, p3) < epsilon && cross(p0, p2, p3) > -epsilon
}

// cross returns the cross product of (b-a) and (c-a), zero when a, b,
// c are collinear.
func cross(a, b, c Point) float64 {
	ab := b.sub(a)
	ac := c.sub(a)
	return ab.X*ac.Y - ab.Y*ac.X
}

// distanceToLine returns the perpendicular distance from p to the line
// segment (a,b), or the distance to a if the segment is degenerate.
func distanceToLine(p, a, b Point) float64 {
	ab := b.sub(a)
	abLen := math.Sqrt(ab.X*ab.X + ab.Y*ab.Y)
	if abLen < 1e-10 {
		return p.distance(a)
	}

	ap := p.sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (abLen * abLen)
	if t < 0 {
		return p.distance(a)
	}
	if t > 1 {
		return p.distance(b)
	}

	closest := Point{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
	return p.distance(closest)
}
