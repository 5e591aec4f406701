// Package fillplot turns flattened path geometry into polygons and, for
// a given scanline, the x-intervals a fill rule says are inside those
// polygons — the geometry the painter walks pixel by pixel.
package fillplot

import (
	"math"

	"github.com/inkraster/raster2d/path"
)

// FillRule selects how overlapping sub-path windings combine into a
// filled region.
type FillRule uint8

const (
	// NonZero fills wherever the signed winding count is non-zero.
	NonZero FillRule = iota
	// EvenOdd fills wherever successive crossings are an odd count in.
	EvenOdd
)

// BoundingBox is an axis-aligned box in device space, updated
// incrementally as vertices are added.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

func emptyBoundingBox() BoundingBox {
	return BoundingBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b *BoundingBox) include(p path.Point) {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Polygon is one closed sub-path's vertex ring plus its running
// bounding box.
type Polygon struct {
	Vertices []path.Point
	BBox     BoundingBox
}

// NewPolygon returns an empty polygon with an empty (inverted) bounding
// box, ready for AddVertex calls.
func NewPolygon() *Polygon {
	return &Polygon{BBox: emptyBoundingBox()}
}

// AddVertex appends a corner and folds it into the running bounding box.
func (p *Polygon) AddVertex(pt path.Point) {
	p.Vertices = append(p.Vertices, pt)
	p.BBox.include(pt)
}

// edges returns the polygon's closed edge list: consecutive vertex
// pairs, plus a closing edge back to the first vertex if the vertex
// ring isn't already closed.
func (p *Polygon) edges() []edge {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]edge, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, newEdge(p.Vertices[i], p.Vertices[i+1]))
	}
	last, first := p.Vertices[n-1], p.Vertices[0]
	if last != first {
		edges = append(edges, newEdge(last, first))
	}
	return edges
}

// PolygonSet is the collection of polygons a flattened path produces,
// the unit the painter fills or strokes.
type PolygonSet struct {
	Polygons []*Polygon
	BBox     BoundingBox

	// edgeCache and crossScratch are rebuilt/reused across EdgesForY
	// calls: the painter asks for every scanline of a polygon's y-range
	// in turn, and neither the edge list nor the crossing buffer should
	// be reallocated per line.
	edgeCache    []edge
	crossScratch []crossing
}

// NewPolygonSet returns an empty polygon set.
func NewPolygonSet() *PolygonSet {
	return &PolygonSet{BBox: emptyBoundingBox()}
}

// AddPolygon appends poly and folds its bounding box into the set's.
func (ps *PolygonSet) AddPolygon(poly *Polygon) {
	ps.Polygons = append(ps.Polygons, poly)
	ps.BBox.include(path.Point{X: poly.BBox.MinX, Y: poly.BBox.MinY})
	ps.BBox.include(path.Point{X: poly.BBox.MaxX, Y: poly.BBox.MaxY})
	ps.edgeCache = nil
}

// FromPolylines builds a PolygonSet with one polygon per polyline,
// corners appended one at a time with the bounding box updated on every
// insert.
func FromPolylines(lines []path.Polyline) *PolygonSet {
	ps := NewPolygonSet()
	for _, line := range lines {
		poly := NewPolygon()
		for _, v := range line {
			poly.AddVertex(v)
		}
		ps.AddPolygon(poly)
	}
	return ps
}

// Interval is a half-open-in-spirit x-range, [X0, X1], that a scanline
// fill rule says is inside the filled region.
type Interval struct {
	X0, X1 float64
}

// EdgesForY returns the fill intervals for the horizontal line y+0.5
// (half-pixel sampling), honoring rule. Crossings are taken from edges
// whose y-range contains the scanline with the lower endpoint inclusive
// and the upper endpoint exclusive, so an edge's own endpoint vertex
// contributes a crossing only to the sub-path below it.
func (ps *PolygonSet) EdgesForY(y float64, rule FillRule) []Interval {
	if ps.edgeCache == nil {
		for _, poly := range ps.Polygons {
			ps.edgeCache = append(ps.edgeCache, poly.edges()...)
		}
	}
	crossings := collectCrossings(ps.edgeCache, y, ps.crossScratch[:0])
	ps.crossScratch = crossings
	return intervalsFromCrossings(crossings, rule)
}

func edgesForY(edges []edge, y float64, rule FillRule) []Interval {
	return intervalsFromCrossings(collectCrossings(edges, y, nil), rule)
}

// collectCrossings appends to buf the x-crossings of the scanline y+0.5
// against edges, skipping horizontal edges, and returns it sorted by x.
func collectCrossings(edges []edge, y float64, buf []crossing) []crossing {
	scanY := y + 0.5
	for _, e := range edges {
		if e.y0 == e.y1 {
			continue
		}
		if scanY < e.y0 || scanY >= e.y1 {
			continue
		}
		buf = append(buf, crossing{x: e.xAtY(scanY), dir: e.dir})
	}
	insertionSortCrossings(buf)
	return buf
}

func intervalsFromCrossings(crossings []crossing, rule FillRule) []Interval {
	switch rule {
	case EvenOdd:
		return evenOddIntervals(crossings)
	default:
		return nonZeroIntervals(crossings)
	}
}

func evenOddIntervals(crossings []crossing) []Interval {
	var intervals []Interval
	for i := 0; i+1 < len(crossings); i += 2 {
		intervals = append(intervals, Interval{X0: crossings[i].x, X1: crossings[i+1].x})
	}
	return intervals
}

func nonZeroIntervals(crossings []crossing) []Interval {
	var intervals []Interval
	sum := 0
	var start float64
	open := false
	for _, c := range crossings {
		prev := sum
		sum += c.dir
		if prev == 0 && sum != 0 {
			start = c.x
			open = true
		} else if prev != 0 && sum == 0 && open {
			intervals = append(intervals, Interval{X0: start, X1: c.x})
			open = false
		}
	}
	return intervals
}

// insertionSortCrossings sorts by x. Crossing lists rarely exceed a
// handful of entries per scanline, where insertion sort beats the
// sort.Slice setup cost.
func insertionSortCrossings(c []crossing) {
	for i := 1; i < len(c); i++ {
		key := c[i]
		j := i - 1
		for j >= 0 && c[j].x > key.x {
			c[j+1] = c[j]
			j--
		}
		c[j+1] = key
	}
}

type crossing struct {
	x   float64
	dir int
}
