package wide

import "testing"

func TestSplatU16(t *testing.T) {
	got := SplatU16(128)
	for i, v := range got {
		if v != 128 {
			t.Errorf("lane %d = %d, want 128", i, v)
		}
	}
}

func TestU16x16AddSub(t *testing.T) {
	a := SplatU16(100)
	b := SplatU16(30)
	sum := a.Add(b)
	diff := a.Sub(b)
	for i := range sum {
		if sum[i] != 130 {
			t.Errorf("Add lane %d = %d, want 130", i, sum[i])
		}
		if diff[i] != 70 {
			t.Errorf("Sub lane %d = %d, want 70", i, diff[i])
		}
	}
}

// The shift approximation in MulDiv255 is an exact truncating divide by
// 255 for any product of two byte channels, so the vector path agrees
// bit-for-bit with the compositor's scalar mulDiv255.
func TestU16x16MulDiv255IsExactTruncatingDivide(t *testing.T) {
	for a := uint32(0); a <= 255; a++ {
		for b := uint32(0); b <= 255; b++ {
			got := SplatU16(uint16(a)).MulDiv255(SplatU16(uint16(b)))
			want := uint16(a * b / 255)
			if got[0] != want {
				t.Fatalf("MulDiv255(%d,%d) = %d, want %d", a, b, got[0], want)
			}
		}
	}
}

func TestU16x16InvAndClamp(t *testing.T) {
	v := SplatU16(200)
	if got := v.Inv(255); got[0] != 55 {
		t.Errorf("Inv(255) = %d, want 55", got[0])
	}
	over := SplatU16(300)
	if got := over.Clamp(255); got[0] != 255 {
		t.Errorf("Clamp(255) = %d, want 255", got[0])
	}
}

func TestU16x16MinMax(t *testing.T) {
	a := U16x16{}
	b := U16x16{}
	for i := range a {
		a[i] = uint16(i)
		b[i] = uint16(15 - i)
	}
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
			t.Errorf("Min lane %d = %d, want %d", i, min[i], wantMin)
		}
		if max[i] != wantMax {
			t.Errorf("Max lane %d = %d, want %d", i, max[i], wantMax)
		}
	}
}
