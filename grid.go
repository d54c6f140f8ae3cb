package main

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUnit constrains v to [0, 1].
func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// unitToByte converts a [0, 1] channel value to a saturated byte.
func unitToByte(v float32) uint8 {
	return uint8(clampUnit(v)*255 + 0.5)
}
