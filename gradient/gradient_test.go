package gradient

import (
	"testing"

	"github.com/inkraster/raster2d/color"
)

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestNewRejectsEmptyStops(t *testing.T) {
	if _, err := NewLinear(0, 0, 1, 0, nil, ExtendPad); err != ErrNoStops {
		t.Errorf("NewLinear(no stops) error = %v, want ErrNoStops", err)
	}
}

func TestLinearOffsetAtEndpoints(t *testing.T) {
	g, err := NewLinear(0, 0, 100, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 1, Color: color.Linear{R: 1, G: 1, B: 1, A: 1}},
	}, ExtendPad)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Offset(0, 0); !near(got, 0, 1e-6) {
		t.Errorf("Offset(start) = %v, want 0", got)
	}
	if got := g.Offset(100, 0); !near(got, 1, 1e-6) {
		t.Errorf("Offset(end) = %v, want 1", got)
	}
	if got := g.Offset(50, 0); !near(got, 0.5, 1e-6) {
		t.Errorf("Offset(mid) = %v, want 0.5", got)
	}
}

func TestLinearExtendPadClampsBeyondRange(t *testing.T) {
	g, _ := NewLinear(0, 0, 100, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 1, Color: color.Linear{R: 1, A: 1}},
	}, ExtendPad)
	if got := g.Offset(-50, 0); got != 0 {
		t.Errorf("Offset(before start, pad) = %v, want 0", got)
	}
	if got := g.Offset(150, 0); got != 1 {
		t.Errorf("Offset(past end, pad) = %v, want 1", got)
	}
}

func TestExtendRepeatWraps(t *testing.T) {
	g, _ := NewLinear(0, 0, 100, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 1, Color: color.Linear{R: 1, A: 1}},
	}, ExtendRepeat)
	if got := g.Offset(125, 0); !near(got, 0.25, 1e-5) {
		t.Errorf("Offset(125, repeat) = %v, want 0.25", got)
	}
}

func TestExtendReflectMirrorsOnOddTiles(t *testing.T) {
	g, _ := NewLinear(0, 0, 100, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 1, Color: color.Linear{R: 1, A: 1}},
	}, ExtendReflect)
	// t_raw = 1.25 -> period 1 (odd) -> reflected to 1-0.25 = 0.75.
	if got := g.Offset(125, 0); !near(got, 0.75, 1e-5) {
		t.Errorf("Offset(125, reflect) = %v, want 0.75", got)
	}
}

func TestSearchInStopsBracketsAndInterpolates(t *testing.T) {
	g, _ := NewLinear(0, 0, 1, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 0.5, Color: color.Linear{R: 1, A: 1}},
		{Offset: 1, Color: color.Linear{G: 1, A: 1}},
	}, ExtendPad)

	c0, c1, local := g.SearchInStops(0.25)
	if c0 != (color.Linear{A: 1}) || c1 != (color.Linear{R: 1, A: 1}) {
		t.Errorf("SearchInStops(0.25) brackets = %+v, %+v", c0, c1)
	}
	if !near(local, 0.5, 1e-6) {
		t.Errorf("SearchInStops(0.25) local = %v, want 0.5", local)
	}
}

func TestSearchInStopsSingleStopReturnsSameColorBothSides(t *testing.T) {
	g, _ := NewLinear(0, 0, 1, 0, []ColorStop{{Offset: 0.5, Color: color.Linear{R: 1, A: 1}}}, ExtendPad)
	c0, c1, local := g.SearchInStops(0.9)
	if c0 != c1 || local != 0 {
		t.Errorf("single-stop SearchInStops = %+v, %+v, local=%v", c0, c1, local)
	}
}

func TestRadialSymmetricAtCenterAndEdge(t *testing.T) {
	g, err := NewRadial(50, 50, 50, 50, 0, 50, []ColorStop{
		{Offset: 0, Color: color.Linear{R: 1, A: 1}},
		{Offset: 1, Color: color.Linear{A: 1}},
	}, ExtendPad)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Offset(50, 50); !near(got, 0, 1e-6) {
		t.Errorf("Offset(center) = %v, want 0", got)
	}
	if got := g.Offset(100, 50); !near(got, 1, 1e-5) {
		t.Errorf("Offset(edge) = %v, want 1", got)
	}
}

func TestRadialFocalOffsetFromCenterAtFocusIsZero(t *testing.T) {
	g, err := NewRadial(50, 50, 30, 30, 0, 50, []ColorStop{
		{Offset: 0, Color: color.Linear{R: 1, A: 1}},
		{Offset: 1, Color: color.Linear{A: 1}},
	}, ExtendPad)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Offset(30, 30); !near(got, 0, 1e-5) {
		t.Errorf("focal Offset(focus) = %v, want 0", got)
	}
}

func TestConicSweepsFullCircle(t *testing.T) {
	g, err := NewConic(0, 0, 0, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{R: 1, A: 1}},
		{Offset: 1, Color: color.Linear{A: 1}},
	}, ExtendPad)
	if err != nil {
		t.Fatal(err)
	}
	// Default conic with endAngle == startAngle has zero sweep; use an
	// explicit full-circle gradient instead to check known angles.
	full, _ := NewConic(0, 0, 0, float32(2*3.14159265), []ColorStop{
		{Offset: 0, Color: color.Linear{R: 1, A: 1}},
		{Offset: 1, Color: color.Linear{A: 1}},
	}, ExtendPad)
	if got := full.Offset(1, 0); !near(got, 0, 1e-3) {
		t.Errorf("conic Offset(angle 0) = %v, want ~0", got)
	}
	_ = g
}

func TestAtInterpolatesColor(t *testing.T) {
	g, _ := NewLinear(0, 0, 100, 0, []ColorStop{
		{Offset: 0, Color: color.Linear{A: 1}},
		{Offset: 1, Color: color.Linear{R: 1, G: 1, B: 1, A: 1}},
	}, ExtendPad)
	mid := g.At(50, 0)
	if !near(mid.R, 0.5, 1e-5) {
		t.Errorf("At(midpoint).R = %v, want 0.5", mid.R)
	}
}
