package wide

import "math"

// F32x8 holds 8 float32 lanes of per-lane float arithmetic. The
// compositor's linear-light formulas and the gradient/dither samplers
// work on scalar float32 values and do not use it.
type F32x8 [8]float32

// SplatF32 returns an F32x8 with every lane set to n.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add returns v[i] + other[i] for each lane.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub returns v[i] - other[i] for each lane.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul returns v[i] * other[i] for each lane.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div returns v[i] / other[i] for each lane.
func (v F32x8) Div(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// Sqrt returns the per-lane square root.
func (v F32x8) Sqrt() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Clamp clamps each lane to [minVal, maxVal].
func (v F32x8) Clamp(minVal, maxVal float32) F32x8 {
	var result F32x8
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}

// Lerp returns v + (other-v)*t per lane, t itself being per-lane.
func (v F32x8) Lerp(other F32x8, t F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + (other[i]-v[i])*t[i]
	}
	return result
}

// Min returns the per-lane minimum of v and other.
func (v F32x8) Min(other F32x8) F32x8 {
	var result F32x8
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
func (v F32x8) Max(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}
