package painter

import (
	"golang.org/x/image/math/f64"

	"github.com/inkraster/raster2d/fillplot"
	"github.com/inkraster/raster2d/strokeplot"
)

// FillOptions configures Fill.
type FillOptions struct {
	// Rule selects how overlapping sub-path windings combine.
	Rule fillplot.FillRule
	// AntiAlias enables the supersampled coverage path. Ignored (treated
	// as false) for a pixfmt.Alpha1 destination, which has no partial
	// coverage to represent.
	AntiAlias bool
	// Tolerance bounds curve-flattening error, in device units. Zero
	// picks path.DefaultTolerance.
	Tolerance float64
}

// StrokeOptions configures Stroke.
type StrokeOptions struct {
	Width      float64
	Join       strokeplot.Join
	Cap        strokeplot.Cap
	MiterLimit float64
	Tolerance  float64
	Dash       *strokeplot.Dash

	// Transform is the device-space matrix the path was built under; see
	// strokeplot.Options.Transform. The zero value is the identity.
	Transform f64.Aff3

	// AntiAlias enables the supersampled coverage path, same caveat as
	// FillOptions.AntiAlias.
	AntiAlias bool
}

func (o StrokeOptions) toStrokeplot() strokeplot.Options {
	return strokeplot.Options{
		Width:      o.Width,
		Join:       o.Join,
		Cap:        o.Cap,
		MiterLimit: o.MiterLimit,
		Tolerance:  o.Tolerance,
		Dash:       o.Dash,
		Transform:  o.Transform,
	}
}
