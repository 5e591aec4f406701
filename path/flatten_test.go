package path

import "testing"

func TestFlattenStraightLinesPassThrough(t *testing.T) {
	p := New()
	p.MoveTo(Point{X: 0, Y: 0})
	_ = p.LineTo(Point{X: 10, Y: 0})
	_ = p.LineTo(Point{X: 10, Y: 10})

	lines := Flatten(p)
	if len(lines) != 1 {
		t.Fatalf("got %d sub-paths, want 1", len(lines))
	}
	want := Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if len(lines[0]) != len(want) {
		t.Fatalf("got %d points, want %d", len(lines[0]), len(want))
	}
	for i, pt := range want {
		if lines[0][i] != pt {
			t.Errorf("point %d = %+v, want %+v", i, lines[0][i], pt)
		}
	}
}

func TestFlattenSplitsOnMoveTo(t *testing.T) {
	p := New()
	p.MoveTo(Point{X: 0, Y: 0})
	_ = p.LineTo(Point{X: 1, Y: 1})
	p.MoveTo(Point{X: 5, Y: 5})
	_ = p.LineTo(Point{X: 6, Y: 6})

	lines := Flatten(p)
	if len(lines) != 2 {
		t.Fatalf("got %d sub-paths, want 2", len(lines))
	}
}

func TestFlattenClosePathRepeatsFirstVertex(t *testing.T) {
	p := New()
	p.MoveTo(Point{X: 0, Y: 0})
	_ = p.LineTo(Point{X: 10, Y: 0})
	_ = p.LineTo(Point{X: 10, Y: 10})
	_ = p.ClosePath()

	lines := Flatten(p)
	last := lines[0][len(lines[0])-1]
	if last != (Point{X: 0, Y: 0}) {
		t.Errorf("last point after close = %+v, want (0,0)", last)
	}
}

func TestFlattenCollinearCubicShortCircuitsToSinglePoint(t *testing.T) {
	p := New()
	p.MoveTo(Point{X: 0, Y: 0})
	// Control points lie exactly on the line from (0,0) to (30,0).
	_ = p.CurveTo(Point{X: 10, Y: 0}, Point{X: 20, Y: 0}, Point{X: 30, Y: 0})

	lines := Flatten(p)
	if len(lines[0]) != 2 {
		t.Fatalf("collinear cubic produced %d points (incl. move-to), want 2", len(lines[0]))
	}
	if lines[0][1] != (Point{X: 30, Y: 0}) {
		t.Errorf("endpoint = %+v, want (30,0)", lines[0][1])
	}
}

func TestFlattenCurvedCubicStaysWithinTolerance(t *testing.T) {
	p := New()
	p.SetTolerance(0.1)
	p.MoveTo(Point{X: 0, Y: 0})
	_ = p.CurveTo(Point{X: 0, Y: 50}, Point{X: 100, Y: 50}, Point{X: 100, Y: 0})

	lines := Flatten(p)
	pts := lines[0]
	if len(pts) < 3 {
		t.Fatalf("got only %d points for a strongly curved cubic, expected adaptive subdivision", len(pts))
	}
	if pts[len(pts)-1] != (Point{X: 100, Y: 0}) {
		t.Errorf("last point = %+v, want (100,0)", pts[len(pts)-1])
	}

	// Every consecutive pair of flattened points should deviate from the
	// original curve by no more than the tolerance at their midpoint;
	// a cheap proxy is that no segment is absurdly long relative to the
	// curve's chord, which would indicate subdivision stopped too early.
	chord := Point{X: 0, Y: 0}.distance(Point{X: 100, Y: 0})
	for i := 1; i < len(pts); i++ {
		segLen := pts[i-1].distance(pts[i])
		if segLen > chord {
			t.Errorf("segment %d length %v exceeds full chord length %v", i, segLen, chord)
		}
	}
}

func TestFlattenDegenerateLineSegmentDistance(t *testing.T) {
	// a == b: distanceToLine should fall back to point distance rather
	// than dividing by a zero-length segment.
	got := distanceToLine(Point{X: 1, Y: 1}, Point{X: 0, Y: 0}, Point{X: 0, Y: 0})
	want := Point{X: 1, Y: 1}.distance(Point{X: 0, Y: 0})
	if got != want {
		t.Errorf("distanceToLine with degenerate segment = %v, want %v", got, want)
	}
}

func TestMatrixInvertIdentity(t *testing.T) {
	inv, ok := Identity().Invert()
	if !ok {
		t.Fatal("Identity().Invert() reported singular")
	}
	if inv != Identity() {
		t.Errorf("inverse of identity = %+v, want identity", inv)
	}
}

func TestMatrixInvertSingularFails(t *testing.T) {
	// A==B==D==E==0 has determinant 0: no inverse.
	m := Matrix{A: 0, B: 0, C: 5, D: 0, E: 0, F: 5}
	if _, ok := m.Invert(); ok {
		t.Error("singular matrix reported invertible")
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Matrix{A: 2, B: 0, C: 10, D: 0, E: 4, F: -5}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	p := Point{X: 3, Y: 7}
	round := inv.Apply(m.Apply(p))
	if absf(round.X-p.X) > 1e-9 || absf(round.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", round, p)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
