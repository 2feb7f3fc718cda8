// SPDX-License-Identifier: EPL-2.0

package utils

import "gonum.org/v1/gonum/stat"

// TrailingMean averages values[i-n+1 : i+1], using fewer points near the
// start of the slice.
func TrailingMean(values []float64, i, n int) float64 {
	if i < 0 || i >= len(values) || n < 1 {
		return 0
	}

	return stat.Mean(values[max(0, i-n+1):i+1], nil)
}

// TrailingMeans applies TrailingMean at every index.
func TrailingMeans(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = TrailingMean(values, i, n)
	}

	return out
}
