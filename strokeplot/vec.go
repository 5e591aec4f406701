package strokeplot

import (
	"math"

	"github.com/inkraster/raster2d/path"
)

func add(a, b path.Point) path.Point { return path.Point{X: a.X + b.X, Y: a.Y + b.Y} }
func sub(a, b path.Point) path.Point { return path.Point{X: a.X - b.X, Y: a.Y - b.Y} }
func scale(a path.Point, s float64) path.Point { return path.Point{X: a.X * s, Y: a.Y * s} }
func dot(a, b path.Point) float64 { return a.X*b.X + a.Y*b.Y }
func cross(a, b path.Point) float64 { return a.X*b.Y - a.Y*b.X }

func length(a path.Point) float64 { return math.Sqrt(dot(a, a)) }

func normalize(a path.Point) path.Point {
	l := length(a)
	if l == 0 {
		return path.Point{}
	}
	return scale(a, 1/l)
}

// perp rotates v a quarter turn counter-clockwise: (x,y) -> (-y,x).
func perp(v path.Point) path.Point {
	return path.Point{X: -v.Y, Y: v.X}
}

func distance(a, b path.Point) float64 {
	return length(sub(b, a))
}
