// SPDX-License-Identifier: EPL-2.0

// Package analysis implements the measurements made on a mono sample
// buffer: loop length estimation, loop variance over time, frame loss
// detection (cutouts and gradients) and gain.
//
// All functions take a context and poll it while they run. They return
// ctx.Err() once it is cancelled and never a partial result.
//
// # Loop analysis
//
// A looped recording repeats every L frames. EstimateLoopLength searches a
// LoopRange for the L whose first two repetitions differ least, and
// LoopVariances then compares every sample with the one L frames earlier,
// one value per window:
//
//	r := analysis.TempoRange(120, 8, buf.Format.SampleRate)
//	L, err := analysis.EstimateLoopLength(ctx, buf.Samples, rate, r, analysis.LoopOptions{Optimisation: 1})
//	v, err := analysis.LoopVariances(ctx, L, buf.Samples, rate, analysis.ScanOptions{WindowSeconds: 1})
//
// The relative difference of a and b is |(b-a)/a|. When a is zero both
// values are shifted by one before dividing.
package analysis
