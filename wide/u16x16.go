package wide

// U16x16 holds 16 uint16 lanes, the integer-precision scratch width the
// compositor's fixed-point blend formulas operate on.
type U16x16 [16]uint16

// SplatU16 returns a U16x16 with every lane set to n.
func SplatU16(n uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = n
	}
	return result
}

// Add returns v[i] + other[i] for each lane.
func (v U16x16) Add(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub returns v[i] - other[i] for each lane.
func (v U16x16) Sub(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul returns v[i] * other[i] for each lane.
func (v U16x16) Mul(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div255 divides each lane by 255 with the standard fast integer
// approximation: (x + 1 + (x>>8)) >> 8, which equals floor(x/255) for
// every x up to 255*255.
func (v U16x16) Div255() U16x16 {
	var result U16x16
	for i := range v {
		x := v[i]
		result[i] = (x + 1 + (x >> 8)) >> 8
	}
	return result
}

// Inv returns maxVal - v[i] for each lane, the per-lane complement used
// for "one minus alpha" terms.
func (v U16x16) Inv(maxVal uint16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = maxVal - v[i]
	}
	return result
}

// MulDiv255 computes (v[i] * other[i]) / 255 per lane via the same fast
// approximation as Div255, the core multiply-and-normalize step of
// integer-precision alpha compositing.
func (v U16x16) MulDiv255(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		x := uint32(v[i]) * uint32(other[i])
		result[i] = uint16((x + 1 + (x >> 8)) >> 8)
	}
	return result
}

// Clamp clamps each lane to [0, maxVal].
func (v U16x16) Clamp(maxVal uint16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] > maxVal {
			result[i] = maxVal
		} else {
			result[i] = v[i]
		}
	}
	return result
}

// Min returns the per-lane minimum of v and other.
func (v U16x16) Min(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max returns the per-lane maximum of v and other.
func (v U16x16) Max(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}
