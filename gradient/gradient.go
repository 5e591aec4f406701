// Package gradient implements the three gradient geometries (linear,
// radial with an optional focal point, conic/sweep) that the compositor
// and dither packages sample from. Stops are interpolated in linear-RGB,
// not gamma-encoded sRGB, for perceptually correct blending.
package gradient

import (
	"errors"
	"math"
	"sort"

	"github.com/inkraster/raster2d/color"
)

// ErrNoStops is returned by constructors given an empty stop list.
var ErrNoStops = errors.New("gradient: at least one color stop is required")

// Geometry identifies which of the three supported gradient shapes a
// Gradient uses, the same tagged-enumeration idiom pixfmt.Format and
// compositor.Operator use for closed, switch-dispatched variants.
type Geometry uint8

const (
	Linear Geometry = iota
	Radial
	Conic
)

// ExtendMode selects how a gradient behaves outside its defined [0,1]
// parametric range.
type ExtendMode uint8

const (
	// ExtendPad clamps to the nearest edge stop.
	ExtendPad ExtendMode = iota
	// ExtendRepeat tiles the gradient.
	ExtendRepeat
	// ExtendReflect mirrors the gradient on alternate tiles.
	ExtendReflect
)

// Interpolation identifies the color-space interpolation the gradient
// uses between bracketing stops. Only linear interpolation in linear-RGB
// is currently defined.
type Interpolation uint8

const (
	InterpolationLinear Interpolation = iota
)

// ColorStop is a color anchored at a position along the gradient's
// parametric range.
type ColorStop struct {
	Offset float32
	Color  color.Linear
}

// Gradient samples a color for any device-space point under one of the
// three supported geometries.
type Gradient struct {
	geometry Geometry
	stops    []ColorStop
	extend   ExtendMode

	// Linear: a ray from (x0,y0) to (x1,y1); t=0 at the start point.
	x0, y0, x1, y1 float32

	// Radial: concentric circles around center, optionally focused away
	// from center for a spotlight effect; t=0 at startRadius.
	centerX, centerY       float32
	focusX, focusY         float32
	startRadius, endRadius float32

	// Conic: angular sweep around center from startAngle to endAngle.
	sweepCenterX, sweepCenterY float32
	startAngle, endAngle       float32
}

func sortedStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	return sorted
}

// NewLinear builds a linear gradient from (x0,y0) to (x1,y1).
func NewLinear(x0, y0, x1, y1 float32, stops []ColorStop, extend ExtendMode) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	return &Gradient{
		geometry: Linear,
		stops:    sortedStops(stops),
		extend:   extend,
		x0:       x0, y0: y0, x1: x1, y1: y1,
	}, nil
}

// NewRadial builds a radial gradient around center (cx,cy) with an
// optional focal point (fx,fy); pass fx==cx && fy==cy for a symmetric
// (non-focal) radial gradient.
func NewRadial(cx, cy, fx, fy, startRadius, endRadius float32, stops []ColorStop, extend ExtendMode) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	return &Gradient{
		geometry:    Radial,
		stops:       sortedStops(stops),
		extend:      extend,
		centerX:     cx, centerY: cy,
		focusX: fx, focusY: fy,
		startRadius: startRadius, endRadius: endRadius,
	}, nil
}

// NewConic builds a conic (sweep) gradient around (cx,cy) from
// startAngle to endAngle, in radians.
func NewConic(cx, cy, startAngle, endAngle float32, stops []ColorStop, extend ExtendMode) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	return &Gradient{
		geometry:     Conic,
		stops:        sortedStops(stops),
		extend:       extend,
		sweepCenterX: cx, sweepCenterY: cy,
		startAngle: startAngle, endAngle: endAngle,
	}, nil
}

// InterpolationMethod reports the color-space interpolation this
// gradient uses between stops.
func (g *Gradient) InterpolationMethod() Interpolation { return InterpolationLinear }

// Offset computes the gradient's parametric position for device-space
// (x,y), already normalized into [0,1] by the gradient's extend mode.
func (g *Gradient) Offset(x, y float32) float32 {
	var t float32
	switch g.geometry {
	case Linear:
		t = g.linearT(x, y)
	case Radial:
		t = g.radialT(x, y)
	default:
		t = g.conicT(x, y)
	}
	return applyExtend(t, g.extend)
}

func (g *Gradient) linearT(x, y float32) float32 {
	dx := g.x1 - g.x0
	dy := g.y1 - g.y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}
	px := x - g.x0
	py := y - g.y0
	return (px*dx + py*dy) / lenSq
}

func (g *Gradient) radialT(x, y float32) float32 {
	radiusDiff := g.endRadius - g.startRadius
	if radiusDiff == 0 {
		return 0
	}
	if g.focusX == g.centerX && g.focusY == g.centerY {
		dx := float64(x - g.centerX)
		dy := float64(y - g.centerY)
		dist := math.Sqrt(dx*dx + dy*dy)
		return float32((dist - float64(g.startRadius)) / float64(radiusDiff))
	}
	return g.radialFocalT(x, y)
}

// radialFocalT solves the ray-circle intersection used by focal radial
// gradients: a ray from the focus through the sampled point, intersected
// with the circle of endRadius around center.
func (g *Gradient) radialFocalT(x, y float32) float32 {
	dx := float64(x - g.focusX)
	dy := float64(y - g.focusY)
	fx := float64(g.centerX - g.focusX)
	fy := float64(g.centerY - g.focusY)

	a := dx*dx + dy*dy
	if a == 0 {
		return 0
	}
	b := -2 * (dx*fx + dy*fy)
	c := fx*fx + fy*fy - float64(g.endRadius)*float64(g.endRadius)

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 1
	}
	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	var tRay float64
	switch {
	case t1 > 0 && t2 > 0:
		tRay = math.Min(t1, t2)
	case t1 > 0:
		tRay = t1
	case t2 > 0:
		tRay = t2
	default:
		return 0
	}

	pointDist := math.Sqrt(a)
	intersectDist := tRay * pointDist
	if intersectDist == 0 {
		return 0
	}
	return float32(pointDist / intersectDist)
}

func (g *Gradient) conicT(x, y float32) float32 {
	dx := float64(x - g.sweepCenterX)
	dy := float64(y - g.sweepCenterY)
	if dx == 0 && dy == 0 {
		return 0
	}
	angle := math.Atan2(dy, dx)
	sweep := float64(g.endAngle - g.startAngle)
	if sweep == 0 {
		return 0
	}
	rel := angle - float64(g.startAngle)
	twoPi := 2 * math.Pi
	if sweep > 0 {
		for rel < 0 {
			rel += twoPi
		}
		for rel >= twoPi {
			rel -= twoPi
		}
	} else {
		for rel > 0 {
			rel -= twoPi
		}
		for rel <= -twoPi {
			rel += twoPi
		}
	}
	return float32(rel / sweep)
}

func applyExtend(t float32, mode ExtendMode) float32 {
	switch mode {
	case ExtendRepeat:
		t -= float32(math.Floor(float64(t)))
		if t < 0 {
			t++
		}
		return t
	case ExtendReflect:
		if t < 0 {
			t = -t
		}
		period := float32(math.Floor(float64(t)))
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
		return t
	default: // ExtendPad
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	}
}

// SearchInStops brackets offset between the two stops that straddle it
// and returns their colors plus the local interpolation parameter
// local = (offset - c0.Offset) / (c1.Offset - c0.Offset). When offset
// falls outside every stop, or only one stop is defined, c0 and c1 are
// both the nearest stop's color and local is 0.
func (g *Gradient) SearchInStops(offset float32) (c0, c1 color.Linear, local float32) {
	if len(g.stops) == 0 {
		return color.Linear{}, color.Linear{}, 0
	}
	if len(g.stops) == 1 {
		return g.stops[0].Color, g.stops[0].Color, 0
	}

	idx := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset >= offset })
	if idx == 0 {
		return g.stops[0].Color, g.stops[0].Color, 0
	}
	if idx >= len(g.stops) {
		last := g.stops[len(g.stops)-1].Color
		return last, last, 0
	}

	lo := g.stops[idx-1]
	hi := g.stops[idx]
	if hi.Offset == lo.Offset {
		return lo.Color, lo.Color, 0
	}
	local = (offset - lo.Offset) / (hi.Offset - lo.Offset)
	return lo.Color, hi.Color, local
}

// At returns the interpolated color at device-space (x,y).
func (g *Gradient) At(x, y float32) color.Linear {
	t := g.Offset(x, y)
	c0, c1, local := g.SearchInStops(t)
	return c0.Lerp(c1, local)
}
