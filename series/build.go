// SPDX-License-Identifier: EPL-2.0

package series

import (
	"github.com/ik5/audiscope/utils"
	"gonum.org/v1/gonum/floats"
)

// Trailing average widths drawn under every raw series.
const (
	ShortAverage = 10
	LongAverage  = 20
)

// Palette is the colour of the raw, short average and long average lines
// of one dataset.
type Palette [3]Color

var (
	PrimaryPalette   = Palette{Red, Blue, Black}
	SecondaryPalette = Palette{Teal, Magenta, Yellow}
)

// Timeline places value i at (i+1)*step seconds.
func Timeline(values []float64, step float64) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{Seconds: float64(i+1) * step, Value: v}
	}

	return out
}

// WithAverages returns the long average, short average and raw series of
// values, in that order, which puts the averages on top. suffix is
// appended to every label.
func WithAverages(values []float64, step float64, p Palette, suffix string) []Series {
	return []Series{
		{Label: "20-Point Average" + suffix, Color: p[2], Points: Timeline(utils.TrailingMeans(values, LongAverage), step)},
		{Label: "10-Point Average" + suffix, Color: p[1], Points: Timeline(utils.TrailingMeans(values, ShortAverage), step)},
		{Label: "Raw Data" + suffix, Color: p[0], Points: Timeline(values, step)},
	}
}

// Pair lays out two datasets on one chart. The one with the higher mean is
// drawn on top in the secondary palette.
func Pair(first, second []float64, step float64) []Series {
	low, high := first, second
	if mean(second) <= mean(first) {
		low, high = second, first
	}

	out := WithAverages(high, step, SecondaryPalette, " 2")

	return append(out, WithAverages(low, step, PrimaryPalette, " 1")...)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return floats.Sum(values) / float64(len(values))
}
