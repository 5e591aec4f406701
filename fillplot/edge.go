package fillplot

import "github.com/inkraster/raster2d/path"

// edge is a single polygon side prepared for scanline crossing tests:
// endpoints sorted by y (y0 <= y1) with the pre-swap winding direction
// preserved, so non-zero fill can still tell which way the original
// segment ran.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int
}

// newEdge builds an edge from a to b, recording dir from the
// pre-normalization order (+1 if a.Y <= b.Y, else -1) before swapping
// endpoints so y0 <= y1.
func newEdge(a, b path.Point) edge {
	dir := 1
	if a.Y > b.Y {
		dir = -1
		a, b = b, a
	}
	return edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dir: dir}
}

// xAtY returns the edge's x position at y, linearly interpolated
// between its endpoints.
func (e edge) xAtY(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}
