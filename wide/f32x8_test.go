package wide

import "testing"

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestSplatF32(t *testing.T) {
	got := SplatF32(0.5)
	for i, v := range got {
		if v != 0.5 {
			t.Errorf("lane %d = %v, want 0.5", i, v)
		}
	}
}

func TestF32x8ArithLanes(t *testing.T) {
	a := SplatF32(3)
	b := SplatF32(2)
	if got := a.Add(b); got[0] != 5 {
		t.Errorf("Add = %v, want 5", got[0])
	}
	if got := a.Sub(b); got[0] != 1 {
		t.Errorf("Sub = %v, want 1", got[0])
	}
	if got := a.Mul(b); got[0] != 6 {
		t.Errorf("Mul = %v, want 6", got[0])
	}
	if got := a.Div(b); got[0] != 1.5 {
		t.Errorf("Div = %v, want 1.5", got[0])
	}
}

func TestF32x8Sqrt(t *testing.T) {
	v := SplatF32(16)
	if got := v.Sqrt(); !near(got[0], 4, 1e-6) {
		t.Errorf("Sqrt(16) = %v, want 4", got[0])
	}
}

func TestF32x8Clamp(t *testing.T) {
	v := F32x8{-1, 0.5, 2, 0, 1, -5, 5, 0.3}
	got := v.Clamp(0, 1)
	want := F32x8{0, 0.5, 1, 0, 1, 0, 1, 0.3}
	if got != want {
		t.Errorf("Clamp = %+v, want %+v", got, want)
	}
}

func TestF32x8LerpAtEndpoints(t *testing.T) {
	a := SplatF32(0)
	b := SplatF32(10)
	if got := a.Lerp(b, SplatF32(0)); got != a {
		t.Errorf("Lerp(t=0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, SplatF32(1)); got != b {
		t.Errorf("Lerp(t=1) = %+v, want %+v", got, b)
	}
	if got := a.Lerp(b, SplatF32(0.5)); got[0] != 5 {
		t.Errorf("Lerp(t=0.5) = %v, want 5", got[0])
	}
}

func TestF32x8MinMax(t *testing.T) {
	a := F32x8{1, 5, 3, 8, 2, 9, 0, 4}
	b := F32x8{4, 2, 3, 1, 7, 9, 5, 0}
	min := a.Min(b)
	max := a.Max(b)
	for i := range a {
		wantMin := a[i]
		if b[i] < wantMin {
			wantMin = b[i]
		}
		wantMax := a[i]
		if b[i] > wantMax {
			wantMax = b[i]
		}
		if min[i] != wantMin {
			t.Errorf("Min lane %d = %v, want %v", i, min[i], wantMin)
		}
		if max[i] != wantMax {
			t.Errorf("Max lane %d = %v, want %v", i, max[i], wantMax)
		}
	}
}
