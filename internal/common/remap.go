package common

// Remap linearly maps value from the range [inMin, inMax] onto [outMin, outMax].
// The result is not clamped, so values outside the input range extrapolate.
// A degenerate input range (inMin == inMax) maps everything to outMin.
func Remap(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
