// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"math"

	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/utils"
)

// SilenceFloorDBFS is reported for silence instead of -Inf.
const SilenceFloorDBFS = -200.0

// Gain is the level of a run of samples in dBFS.
type Gain struct {
	PeakDBFS float64
	RMSDBFS  float64
}

// MeasureGain returns the peak and RMS level of samples. Positive samples
// are measured against 2^(b-1)-1 and negative ones against -2^(b-1), so a
// full-scale square wave peaks at 0 dBFS.
func MeasureGain(ctx context.Context, samples []int, bitDepth int) (Gain, error) {
	if bitDepth < 2 || bitDepth > 32 {
		return Gain{}, ErrInvalidBitDepth
	}
	if len(samples) == 0 {
		return Gain{PeakDBFS: SilenceFloorDBFS, RMSDBFS: SilenceFloorDBFS}, nil
	}

	var peak, squares float64
	for i, x := range samples {
		if i&progress.PollMask == 0 {
			if err := ctx.Err(); err != nil {
				return Gain{}, err
			}
		}
		r := utils.FullScaleRatio(x, bitDepth)
		peak = max(peak, r)
		squares += r * r
	}

	rms := math.Sqrt(squares / float64(len(samples)))

	return Gain{
		PeakDBFS: utils.ToDBFS(peak, SilenceFloorDBFS),
		RMSDBFS:  utils.ToDBFS(rms, SilenceFloorDBFS),
	}, nil
}

// WindowFrames converts a window in seconds to frames, rounding to the
// nearest frame.
func WindowFrames(windowSeconds float64, rate int) int {
	return int(math.Round(windowSeconds * float64(rate)))
}

// Waveform measures the gain of each full window of windowSeconds. A
// trailing partial window is ignored.
func Waveform(ctx context.Context, samples []int, rate, bitDepth int, windowSeconds float64, rep *progress.Reporter) ([]Gain, error) {
	if rate <= 0 {
		return nil, ErrInvalidFrameRate
	}

	window := WindowFrames(windowSeconds, rate)
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	n := len(samples)
	out := make([]Gain, 0, n/window)

	for start := 0; start+window <= n; start += window {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep.Percent(int64(start), int64(n))

		g, err := MeasureGain(ctx, samples[start:start+window], bitDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	return out, nil
}
