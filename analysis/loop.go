// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/ik5/audiscope/progress"
)

// DefaultAutoWindow is how many seconds an automatic search continues past
// the best length found so far.
const DefaultAutoWindow = 10

// LoopRange is an inclusive range of candidate loop lengths in frames.
type LoopRange struct {
	Min, Max int
	// Auto enables the early stop of an automatic search.
	Auto bool
}

// TempoRange brackets the length of a loop of beats beats at tempo BPM
// with two seconds on either side.
func TempoRange(tempo, beats float64, rate int) LoopRange {
	if tempo <= 0 || beats <= 0 {
		return LoopRange{Min: 1, Max: 0}
	}

	seconds := 60 / tempo * beats
	lo := max(1, int(math.Floor(seconds))-2)
	hi := int(math.Ceil(seconds)) + 2

	return LoopRange{Min: lo * rate, Max: hi * rate}
}

// SecondsRange covers minSeconds (at least one) to maxSeconds.
func SecondsRange(minSeconds, maxSeconds, rate int) LoopRange {
	return LoopRange{Min: max(1, minSeconds) * rate, Max: maxSeconds * rate}
}

// AutoRange searches from one second up to a quarter of the buffer.
func AutoRange(n, rate int) LoopRange {
	return LoopRange{Min: rate, Max: n / 4, Auto: true}
}

type LoopOptions struct {
	// Optimisation scales the comparison stride with the loop length in
	// seconds. Zero compares every frame.
	Optimisation int
	// AutoWindow is the early stop distance in seconds for automatic
	// ranges. Zero means DefaultAutoWindow.
	AutoWindow int
	Reporter   *progress.Reporter
}

// EstimateLoopLength returns the candidate length L in r for which
// samples[0:L) and samples[L:2L) differ least. Ties keep the shortest
// length. Candidates with 2L > len(samples) are dropped.
func EstimateLoopLength(ctx context.Context, samples []int, rate int, r LoopRange, opts LoopOptions) (int, error) {
	if rate <= 0 {
		return 0, ErrInvalidFrameRate
	}

	lo, hi := max(1, r.Min), min(r.Max, len(samples)/2)
	if lo > hi {
		return 0, fmt.Errorf("%w: no candidates between %d and %d frames", ErrNoLoopFound, r.Min, r.Max)
	}

	autoWindow := opts.AutoWindow
	if autoWindow <= 0 {
		autoWindow = DefaultAutoWindow
	}
	autoWindow *= rate

	best, bestDiff := -1, 0.0
	total := int64(hi - lo + 1)

	for length := lo; length <= hi; length++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		opts.Reporter.Percent(int64(length-lo), total)

		stride := max(1, length/rate*opts.Optimisation)
		diff, err := loopDifference(ctx, samples, length, stride)
		if err != nil {
			return 0, err
		}

		if best == -1 || diff < bestDiff {
			best, bestDiff = length, diff
		}
		if r.Auto && length-best > autoWindow {
			break
		}
	}

	return best, nil
}

// loopDifference is the mean relative difference between the first two
// repetitions of a loop of the given length, sampled every stride frames.
func loopDifference(ctx context.Context, samples []int, length, stride int) (float64, error) {
	var (
		sum   float64
		count int
	)

	for i := 0; i < length; i += stride {
		if count&progress.PollMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		sum += relativeDiff(samples[i], samples[i+length])
		count++
	}

	return sum / float64(count), nil
}

func relativeDiff(a, b int) float64 {
	if a == 0 {
		a++
		b++
	}

	return math.Abs(float64(b-a) / float64(a))
}
