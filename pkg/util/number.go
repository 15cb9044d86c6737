package util

import "math"

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/total×100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
