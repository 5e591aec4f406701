package compositor

import "testing"

func TestLumWeightsGreenMost(t *testing.T) {
	if got := Lum(1, 0, 0); !near(got, 0.30) {
		t.Errorf("Lum(red) = %v, want 0.30", got)
	}
	if got := Lum(0, 1, 0); !near(got, 0.59) {
		t.Errorf("Lum(green) = %v, want 0.59", got)
	}
	if got := Lum(0, 0, 1); !near(got, 0.11) {
		t.Errorf("Lum(blue) = %v, want 0.11", got)
	}
}

func TestSatIsMaxMinusMin(t *testing.T) {
	if got := Sat(0.2, 0.8, 0.5); !near(got, 0.6) {
		t.Errorf("Sat = %v, want 0.6", got)
	}
	if got := Sat(0.4, 0.4, 0.4); !near(got, 0) {
		t.Errorf("Sat of gray = %v, want 0", got)
	}
}

func TestSetLumProducesTargetLuminance(t *testing.T) {
	r, g, b := SetLum(0.9, 0.4, 0.1, 0.5)
	if got := Lum(r, g, b); !near(got, 0.5) {
		t.Errorf("SetLum target luminance = %v, want 0.5", got)
	}
}

func TestSetLumClipsIntoGamut(t *testing.T) {
	// A channel pushed toward a luminance far from its own clips back
	// into [0,1] rather than overflowing.
	r, g, b := SetLum(1, 1, 1, 0.1)
	for name, v := range map[string]float32{"r": r, "g": g, "b": b} {
		if v < 0 || v > 1 {
			t.Errorf("SetLum channel %s = %v, out of [0,1]", name, v)
		}
	}
}

func TestSetSatProducesTargetSaturation(t *testing.T) {
	r, g, b := SetSat(0.2, 0.8, 0.5, 0.9)
	if got := Sat(r, g, b); !near(got, 0.9) {
		t.Errorf("SetSat target saturation = %v, want 0.9", got)
	}
}

func TestSetSatOfGrayStaysZeroSaturation(t *testing.T) {
	r, g, b := SetSat(0.4, 0.4, 0.4, 0.9)
	if got := Sat(r, g, b); !near(got, 0) {
		t.Errorf("SetSat of a gray input (max==min) = %v, want 0", got)
	}
}

func TestClipColorPassesThroughInGamutColor(t *testing.T) {
	r, g, b := ClipColor(0.3, 0.6, 0.9)
	if !near(r, 0.3) || !near(g, 0.6) || !near(b, 0.9) {
		t.Errorf("ClipColor(in-gamut) = (%v,%v,%v), want unchanged", r, g, b)
	}
}

func TestHslLuminosityTakesSourceLuminosity(t *testing.T) {
	sr, sg, sb := float32(0.9), float32(0.9), float32(0.9)
	dr, dg, db := float32(1), float32(0), float32(0)
	r, g, b := hslLuminosity(sr, sg, sb, dr, dg, db)
	if got, want := Lum(r, g, b), Lum(sr, sg, sb); !near(got, want) {
		t.Errorf("hslLuminosity result luminance = %v, want source luminance %v", got, want)
	}
}
