// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"

	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/scale"
)

// ScanOptions controls the windowed scanners.
type ScanOptions struct {
	// WindowSeconds is the length of one output value.
	WindowSeconds int
	Scale         scale.Kind
	Reporter      *progress.Reporter
}

func (o ScanOptions) window(rate int) (int, error) {
	if rate <= 0 {
		return 0, ErrInvalidFrameRate
	}

	w := o.WindowSeconds * rate
	if w < 1 {
		return 0, ErrInvalidWindow
	}

	return w, nil
}

// LoopVariances compares every sample with the one loopLength frames
// earlier and returns the scaled mean relative difference per window.
// The first window starts one window plus one loop into the buffer and the
// last one may be shorter than the rest.
func LoopVariances(ctx context.Context, loopLength int, samples []int, rate int, opts ScanOptions) ([]float64, error) {
	window, err := opts.window(rate)
	if err != nil {
		return nil, err
	}
	if loopLength < 1 {
		return nil, ErrNoLoopFound
	}

	first := window + loopLength
	n := len(samples)
	out := make([]float64, 0, max(0, (n-first+window-1)/window))

	for start := first; start < n; start += window {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts.Reporter.Percent(int64(start-first), int64(n-first))

		end := min(start+window, n)
		var sum float64
		for i := start; i < end; i++ {
			if (i-start)&progress.PollMask == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			sum += relativeDiff(samples[i], samples[i-loopLength])
		}

		v, err := opts.Scale.Apply(sum / float64(end-start))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
