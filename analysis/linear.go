// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"math"

	"github.com/ik5/audiscope/progress"
	"gonum.org/v1/gonum/floats"
)

// CutoutProbabilities reports, per window, the largest drop to exactly
// zero relative to 2^bitDepth. Windows without such a drop report 0.
func CutoutProbabilities(ctx context.Context, samples []int, rate, bitDepth int, opts ScanOptions) ([]float64, error) {
	return scanPairs(ctx, samples, rate, bitDepth, opts, func(prev, cur int) float64 {
		if cur != 0 {
			return 0
		}

		return math.Abs(float64(prev))
	})
}

// GradientProbabilities reports, per window, the largest jump between two
// consecutive samples relative to 2^bitDepth.
func GradientProbabilities(ctx context.Context, samples []int, rate, bitDepth int, opts ScanOptions) ([]float64, error) {
	return scanPairs(ctx, samples, rate, bitDepth, opts, func(prev, cur int) float64 {
		return math.Abs(float64(cur - prev))
	})
}

// scanPairs applies metric to every consecutive pair and keeps the
// maximum per window. A pair belongs to the window of its second sample.
func scanPairs(ctx context.Context, samples []int, rate, bitDepth int, opts ScanOptions, metric func(prev, cur int) float64) ([]float64, error) {
	window, err := opts.window(rate)
	if err != nil {
		return nil, err
	}
	if bitDepth < 1 || bitDepth > 32 {
		return nil, ErrInvalidBitDepth
	}

	fullScale := math.Ldexp(1, bitDepth)
	n := len(samples)
	out := make([]float64, 0, (n+window-1)/window)

	for start := 0; start < n; start += window {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts.Reporter.Percent(int64(start), int64(n))

		end := min(start+window, n)
		peak := 0.0
		for i := max(start, 1); i < end; i++ {
			if (i-start)&progress.PollMask == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			peak = max(peak, metric(samples[i-1], samples[i]))
		}

		v, err := opts.Scale.Apply(peak / fullScale)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// Normalise maps whichever of a and b has the smaller value range onto the
// range of the other, in place. It does nothing when the lengths differ or
// both are empty. A constant series is moved to the target minimum.
func Normalise(a, b []float64) {
	if len(a) != len(b) || len(a) == 0 {
		return
	}

	minA, maxA := floats.Min(a), floats.Max(a)
	minB, maxB := floats.Min(b), floats.Max(b)

	src, srcMin, srcRange := b, minB, maxB-minB
	dstMin, dstRange := minA, maxA-minA
	if maxA-minA < maxB-minB {
		src, srcMin, srcRange = a, minA, maxA-minA
		dstMin, dstRange = minB, maxB-minB
	}

	if srcRange == 0 {
		for i := range src {
			src[i] = dstMin
		}
		return
	}

	for i, v := range src {
		src[i] = (v-srcMin)*(dstRange/srcRange) + dstMin
	}
}
