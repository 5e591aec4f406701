package color

import "math"

// sRGBToLinearLUT gives O(1) sRGB byte -> linear float32 conversion.
// 256 entries, built once at init.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT gives O(1) linear float32 -> sRGB byte conversion.
// 4096 entries (12-bit precision) is more than enough for 8-bit output.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		s := float64(i) / 255.0
		var linear float64
		if s <= 0.04045 {
			linear = s / 12.92
		} else {
			linear = math.Pow((s+0.055)/1.055, 2.4)
		}
		sRGBToLinearLUT[i] = float32(linear)
	}

	for i := 0; i < 4096; i++ {
		linear := float64(i) / 4095.0
		var s float64
		if linear <= 0.0031308 {
			s = linear * 12.92
		} else {
			s = 1.055*math.Pow(linear, 1.0/2.4) - 0.055
		}
		srgb := int(s*255.0 + 0.5)
		if srgb < 0 {
			srgb = 0
		}
		if srgb > 255 {
			srgb = 255
		}
		linearToSRGBLUT[i] = uint8(srgb)
	}
}

// SRGBToLinearFast converts an sRGB byte to a linear float32 via table
// lookup, avoiding a math.Pow call per pixel.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear float32 (clamped to [0,1]) to an
// sRGB byte via table lookup.
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}

// SRGBToLinearSlow computes the sRGB EOTF directly with math.Pow. Kept for
// tests that need reference precision against the LUT.
func SRGBToLinearSlow(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGBSlow computes the sRGB OETF directly with math.Pow. Kept for
// tests that need reference precision against the LUT.
func LinearToSRGBSlow(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}
