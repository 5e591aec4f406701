// Package path builds node lists describing vector outlines — straight
// lines, cubic Béziers, and closures — and flattens them to polylines
// within a tolerance bound, the geometry both the fill and stroke
// plotters consume.
package path

import (
	"errors"
	"math"
)

// ErrNoCurrentPoint is returned when LineTo or CurveTo is called before
// any MoveTo has established a current point.
var ErrNoCurrentPoint = errors.New("path: no current point")

// ErrNoInitialPoint is returned when ClosePath is called on a path with
// no current sub-path to close.
var ErrNoInitialPoint = errors.New("path: no initial point")

// DefaultTolerance is the maximum deviation, in device units, a
// flattened polyline may have from the curve it approximates.
const DefaultTolerance = 0.1

// MinTolerance is the smallest tolerance a Path will accept; smaller
// requests are clamped up to this floor to keep adaptive subdivision
// from recursing unboundedly on numerically flat curves.
const MinTolerance = 0.001

// Point is a 2D coordinate in device space.
type Point struct {
	X, Y float64
}

func (p Point) lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) distance(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// clampToInt32Range clamps a coordinate to the representable range of a
// signed 32-bit integer, the storage invariant nodes are held to.
func clampToInt32Range(v float64) float64 {
	const max = float64(math.MaxInt32)
	const min = float64(math.MinInt32)
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}

func clampPoint(p Point) Point {
	return Point{X: clampToInt32Range(p.X), Y: clampToInt32Range(p.Y)}
}

// NodeKind identifies the operation a Node records.
type NodeKind uint8

const (
	MoveTo NodeKind = iota
	LineTo
	CurveTo
	ClosePath
)

func (k NodeKind) String() string {
	switch k {
	case MoveTo:
		return "move-to"
	case LineTo:
		return "line-to"
	case CurveTo:
		return "curve-to"
	case ClosePath:
		return "close-path"
	default:
		return "unknown"
	}
}

// Node is one element of a path's node list. For MoveTo and LineTo, To
// is the only meaningful field. For CurveTo, Control1/Control2/To are
// the cubic Bézier's p1, p2, p3. ClosePath carries no data.
type Node struct {
	Kind               NodeKind
	Control1, Control2 Point
	To                 Point
}

// Path accumulates a node list along with the bookkeeping — initial and
// current point, pending transform, and flattening tolerance — needed
// to validate and flatten it.
type Path struct {
	nodes        []Node
	initial      Point
	current      Point
	hasCurrent   bool
	openSubpaths int
	transform    Matrix
	tolerance    float64
}

// New returns an empty path with the identity transform and the
// default tolerance.
func New() *Path {
	return &Path{transform: Identity(), tolerance: DefaultTolerance}
}

// SetTransform installs m as the pending transform applied to every
// point given to MoveTo/LineTo/CurveTo from this point forward.
func (p *Path) SetTransform(m Matrix) { p.transform = m }

// Transform returns the path's current pending transform.
func (p *Path) Transform() Matrix { return p.transform }

// SetTolerance sets the flattening tolerance, clamped up to MinTolerance.
func (p *Path) SetTolerance(t float64) {
	if t < MinTolerance {
		t = MinTolerance
	}
	p.tolerance = t
}

// Tolerance returns the path's current flattening tolerance.
func (p *Path) Tolerance() float64 {
	if p.tolerance <= 0 {
		return DefaultTolerance
	}
	return p.tolerance
}

// Nodes returns the accumulated node list.
func (p *Path) Nodes() []Node { return p.nodes }

// IsClosed reports whether every sub-path emitted so far ends in
// ClosePath — the invariant Fill requires before it will rasterize.
func (p *Path) IsClosed() bool {
	return p.openSubpaths == 0
}

// NodesClosed reports whether every sub-path in a raw node list (as
// received by painter.Fill, which takes []Node rather than a *Path) ends
// in ClosePath, mirroring Path.IsClosed's open-subpath bookkeeping.
func NodesClosed(nodes []Node) bool {
	open := 0
	for _, n := range nodes {
		switch n.Kind {
		case MoveTo:
			open++
		case ClosePath:
			if open > 0 {
				open--
			}
		}
	}
	return open == 0
}

// MoveTo starts a new sub-path at pt, under the pending transform. A
// MoveTo always begins a sub-path's node list: it is the first node
// invariant every sub-path in the path must satisfy.
func (p *Path) MoveTo(pt Point) {
	tp := clampPoint(p.transform.Apply(pt))
	p.nodes = append(p.nodes, Node{Kind: MoveTo, To: tp})
	p.initial = tp
	p.current = tp
	p.hasCurrent = true
	p.openSubpaths++
}

// LineTo appends a straight segment to pt. Returns ErrNoCurrentPoint if
// no MoveTo has been issued yet.
func (p *Path) LineTo(pt Point) error {
	if !p.hasCurrent {
		return ErrNoCurrentPoint
	}
	tp := clampPoint(p.transform.Apply(pt))
	p.nodes = append(p.nodes, Node{Kind: LineTo, To: tp})
	p.current = tp
	return nil
}

// CurveTo appends a cubic Bézier with control points c1, c2 ending at
// pt. Returns ErrNoCurrentPoint if no MoveTo has been issued yet.
func (p *Path) CurveTo(c1, c2, pt Point) error {
	if !p.hasCurrent {
		return ErrNoCurrentPoint
	}
	tc1 := clampPoint(p.transform.Apply(c1))
	tc2 := clampPoint(p.transform.Apply(c2))
	tp := clampPoint(p.transform.Apply(pt))
	p.nodes = append(p.nodes, Node{Kind: CurveTo, Control1: tc1, Control2: tc2, To: tp})
	p.current = tp
	return nil
}

// ArcTo appends a circular arc centered at center, from startAngle to
// endAngle radians, as one or more cubic Bézier segments each spanning
// at most π/2, per the classical four-control-point approximation. A
// MoveTo to the arc's start point is emitted first if there is no
// current point; otherwise a LineTo connects the current point to it.
func (p *Path) ArcTo(center Point, radius, startAngle, endAngle float64) error {
	start := Point{X: center.X + radius*math.Cos(startAngle), Y: center.Y + radius*math.Sin(startAngle)}
	if !p.hasCurrent {
		p.MoveTo(start)
	} else if p.current != start {
		if err := p.LineTo(start); err != nil {
			return err
		}
	}

	span := endAngle - startAngle
	if span == 0 {
		return nil
	}
	const maxSpan = math.Pi / 2

	segments := int(math.Ceil(math.Abs(span) / maxSpan))
	if segments < 1 {
		segments = 1
	}
	step := span / float64(segments)

	a0 := startAngle
	for i := 0; i < segments; i++ {
		a1 := a0 + step
		c1, c2, end := arcSegmentControlPoints(center, radius, a0, a1)
		if err := p.CurveTo(c1, c2, end); err != nil {
			return err
		}
		a0 = a1
	}
	return nil
}

// arcSegmentControlPoints computes the cubic Bézier control points
// approximating a circular arc of center c and radius r spanning [a0,a1]
// (|a1-a0| <= pi/2), using the standard kappa = 4/3*tan(span/4) formula.
func arcSegmentControlPoints(c Point, r, a0, a1 float64) (p1, p2, end Point) {
	span := a1 - a0
	kappa := 4.0 / 3.0 * math.Tan(span/4)

	s0, c0 := math.Sin(a0), math.Cos(a0)
	s1, c1v := math.Sin(a1), math.Cos(a1)

	start := Point{X: c.X + r*c0, Y: c.Y + r*s0}
	end = Point{X: c.X + r*c1v, Y: c.Y + r*s1}

	p1 = Point{X: start.X - kappa*r*s0, Y: start.Y + kappa*r*c0}
	p2 = Point{X: end.X + kappa*r*s1, Y: end.Y - kappa*r*c1v}
	return p1, p2, end
}

// ClosePath closes the current sub-path, connecting back to its initial
// point, and moves the current point there. It emits no MoveTo node: a
// LineTo or CurveTo issued after ClosePath starts from the initial point
// but extends the same node run, and IsClosed does not count it as a new
// open sub-path. Returns ErrNoInitialPoint if no MoveTo has been issued.
func (p *Path) ClosePath() error {
	if !p.hasCurrent {
		return ErrNoInitialPoint
	}
	p.nodes = append(p.nodes, Node{Kind: ClosePath})
	p.current = p.initial
	if p.openSubpaths > 0 {
		p.openSubpaths--
	}
	return nil
}
