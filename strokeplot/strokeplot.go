// Package strokeplot expands a flattened path into the polygon outline a
// stroke of a given width, join, cap, and dash pattern would cover. The
// result is a fillplot.PolygonSet meant to be filled with the non-zero
// rule, exactly like an ordinary filled path.
package strokeplot

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Cap selects the shape drawn at the unconnected end of an open sub-path.
type Cap uint8

const (
	// CapButt ends the stroke flush with the path's endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a semicircle of radius width/2.
	CapRound
	// CapSquare extends the stroke by width/2 past the endpoint.
	CapSquare
)

// Join selects how two consecutive segments are connected.
type Join uint8

const (
	// JoinMiter extends both segment edges to their intersection, falling
	// back to JoinBevel past the configured miter limit.
	JoinMiter Join = iota
	// JoinRound connects segments with an arc of radius width/2.
	JoinRound
	// JoinBevel connects segments with a straight chord across the corner.
	JoinBevel
)

// MinWidth is the hard floor below which a stroke width is clamped, in
// device units.
const MinWidth = 1.0 / 256

// ThinWidthThreshold is the width below which a stroke reverts to the
// miter/butt/miter-limit-10 override to avoid degenerate join artifacts.
const ThinWidthThreshold = 2.0

// DefaultMiterLimit is the miter limit used by the thin-stroke override
// and a reasonable default for callers that don't set one.
const DefaultMiterLimit = 10.0

// Dash is a dash pattern: alternating on/off run lengths walked by
// arc length, plus a starting phase offset.
type Dash struct {
	Pattern []float64
	Offset  float64
}

// valid reports whether d describes an actual dash (non-empty, no
// negative lengths, not all zero).
func (d *Dash) valid() bool {
	if d == nil || len(d.Pattern) == 0 {
		return false
	}
	anyPositive := false
	for _, l := range d.Pattern {
		if l < 0 {
			return false
		}
		if l > 0 {
			anyPositive = true
		}
	}
	return anyPositive
}

// Options configures stroke expansion.
type Options struct {
	Width      float64
	Join       Join
	Cap        Cap
	MiterLimit float64
	Tolerance  float64
	Dash       *Dash

	// Transform is the device-space matrix the stroked path was built
	// under. A non-uniform scale (e.g. a path flattened under a matrix
	// that stretches x differently from y) would otherwise make a stroke
	// of constant Width look thicker along one axis; Transform's uniform
	// scale factor (sqrt of its linear part's determinant) corrects
	// Width back to what the path's author intended before any non-
	// uniform component of the transform was applied. The zero value
	// (Transform's linear part all zero) is treated as the identity.
	Transform f64.Aff3
}

// transformScale returns the uniform-scale component of m's linear part,
// or 1 for the zero value (no transform configured).
func transformScale(m f64.Aff3) float64 {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return 1
	}
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}

// resolved is Options after the thin-stroke override and minimum-width
// clamp have been applied.
type resolved struct {
	halfWidth  float64
	join       Join
	cap        Cap
	miterLimit float64
	tolerance  float64
}

func resolve(opts Options) resolved {
	w := opts.Width * transformScale(opts.Transform)
	if w < MinWidth {
		w = MinWidth
	}
	r := resolved{
		halfWidth:  w / 2,
		join:       opts.Join,
		cap:        opts.Cap,
		miterLimit: opts.MiterLimit,
		tolerance:  opts.Tolerance,
	}
	if r.miterLimit <= 0 {
		r.miterLimit = DefaultMiterLimit
	}
	if r.tolerance <= 0 {
		r.tolerance = 0.1
	}
	if w < ThinWidthThreshold {
		r.join = JoinMiter
		r.cap = CapButt
		r.miterLimit = DefaultMiterLimit
	}
	return r
}
