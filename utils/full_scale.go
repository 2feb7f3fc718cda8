// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScaleRatio returns x relative to the largest value of its sign at the
// given bit depth: 2^(b-1)-1 for x >= 0 and -2^(b-1) for x < 0. The result
// is always in [0, 1] for in-range samples.
func FullScaleRatio(x, bitDepth int) float64 {
	half := math.Ldexp(1, bitDepth-1)
	if x >= 0 {
		return float64(x) / (half - 1)
	}

	return float64(x) / -half
}

// ToDBFS converts an amplitude ratio to decibels, never going below floor.
func ToDBFS(ratio, floor float64) float64 {
	if ratio <= 0 {
		return floor
	}

	return max(20*math.Log10(ratio), floor)
}
