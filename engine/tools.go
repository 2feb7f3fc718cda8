// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ik5/audiscope/analysis"
	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/scale"
	"github.com/ik5/audiscope/series"
	"github.com/ik5/audiscope/split"
)

// Output name prefixes.
const (
	PrefixLoop    = "[AS Loop]"
	PrefixLinear  = "[AS Linear]"
	PrefixLinear1 = "[AS Linear 1]"
	PrefixLinear2 = "[AS Linear 2]"
	PrefixGain    = "[AS Gain]"
)

// loopScan charts the loop variance of every file. The loop length of a
// music batch is estimated once, on the first file that yields one, and
// rescaled for files with another sample rate.
func (e *Engine) loopScan(ctx context.Context, rep *progress.Reporter, sum *Summary, b Batch) error {
	var loopLength, loopRate int
	yLabel := fmt.Sprintf("Variance (%s Scale)", e.cfg.VarianceScale)

	return e.eachFile(ctx, rep, sum, b.Files, func(path string) error {
		rep.Printf("Loading file: %s", filepath.Base(path))
		buf, err := e.load(ctx, rep, path, e.cfg.LoopFileSizeLimit)
		if err != nil {
			return err
		}
		rate := buf.Format.SampleRate

		switch b.Loop {
		case LoopSine:
			loopLength, loopRate = rate*e.cfg.SineScanWindow, rate
		case LoopNoise:
			loopLength, loopRate = rate*e.cfg.NoiseScanWindow, rate
		default:
			if loopLength == 0 {
				rep.Printf("Calculating length of audio loop...")
				rep.Restart()
				n, err := analysis.EstimateLoopLength(ctx, buf.Samples, rate, b.loopRange(len(buf.Samples), rate), analysis.LoopOptions{
					Optimisation: e.cfg.Optimisation,
					AutoWindow:   e.cfg.AutoScanWindow,
					Reporter:     rep,
				})
				if err != nil {
					return err
				}
				loopLength, loopRate = n, rate
			}
		}
		current := int(math.Round(float64(rate) / float64(loopRate) * float64(loopLength)))

		rep.Printf("Analysing audio quality...")
		rep.Restart()
		variances, err := analysis.LoopVariances(ctx, current, buf.Samples, rate, e.scanOptions(rep, e.cfg.VarianceScale))
		if err != nil {
			return err
		}

		rep.Printf("Generating output files...")
		step := float64(e.cfg.TimeScale)
		c := e.chart(path, b.outputDir(path), PrefixLoop, yLabel, series.WithAverages(variances, step, series.PrimaryPalette, ""))
		if err := e.emit(ctx, sum, c); err != nil {
			return err
		}

		rep.Printf("Analysis complete!")
		return nil
	})
}

// linearScan charts frame loss probabilities with the detectors
// Config.LinearMode selects.
func (e *Engine) linearScan(ctx context.Context, rep *progress.Reporter, sum *Summary, b Batch) error {
	mode := e.cfg.LinearMode
	yLabel := fmt.Sprintf("Frame Loss Probability (%s Scale)", e.cfg.ProbabilityScale)
	step := float64(e.cfg.TimeScale)

	return e.eachFile(ctx, rep, sum, b.Files, func(path string) error {
		rep.Printf("Loading file: %s", filepath.Base(path))
		buf, err := e.load(ctx, rep, path, e.cfg.LinearFileSizeLimit)
		if err != nil {
			return err
		}
		rate, bits := buf.Format.SampleRate, buf.Format.BitDepth
		opts := e.scanOptions(rep, e.cfg.ProbabilityScale)
		dir := b.outputDir(path)

		var charts []series.Chart
		if mode.Dual() {
			rep.Printf("Analysing audio quality (1/2)...")
			rep.Restart()
			cutout, err := analysis.CutoutProbabilities(ctx, buf.Samples, rate, bits, opts)
			if err != nil {
				return err
			}

			rep.Printf("Analysing audio quality (2/2)...")
			rep.Restart()
			gradient, err := analysis.GradientProbabilities(ctx, buf.Samples, rate, bits, opts)
			if err != nil {
				return err
			}

			rep.Printf("Consolidating analysis results...")
			analysis.Normalise(cutout, gradient)

			if mode == LinearCombined {
				charts = append(charts, e.chart(path, dir, PrefixLinear, yLabel, series.Pair(cutout, gradient, step)))
			} else {
				charts = append(charts,
					e.chart(path, dir, PrefixLinear1, yLabel, series.WithAverages(cutout, step, series.PrimaryPalette, "")),
					e.chart(path, dir, PrefixLinear2, yLabel, series.WithAverages(gradient, step, series.PrimaryPalette, "")),
				)
			}
		} else {
			rep.Printf("Analysing audio quality...")
			rep.Restart()
			scan := analysis.CutoutProbabilities
			if mode == LinearGradient {
				scan = analysis.GradientProbabilities
			}
			probabilities, err := scan(ctx, buf.Samples, rate, bits, opts)
			if err != nil {
				return err
			}
			charts = append(charts, e.chart(path, dir, PrefixLinear, yLabel, series.WithAverages(probabilities, step, series.PrimaryPalette, "")))
		}

		rep.Printf("Generating output files...")
		for _, c := range charts {
			if err := e.emit(ctx, sum, c); err != nil {
				return err
			}
		}

		rep.Printf("Analysis complete!")
		return nil
	})
}

// splitFiles cuts every file into parts no larger than the batch limit.
func (e *Engine) splitFiles(ctx context.Context, rep *progress.Reporter, sum *Summary, b Batch) error {
	return e.eachFile(ctx, rep, sum, b.Files, func(path string) error {
		rep.Printf("Splitting file: %s", filepath.Base(path))
		if !isWAV(path) {
			if err := checkSize(path, e.cfg.SplitFileSizeLimit); err != nil {
				return err
			}
		}

		rep.Restart()
		parts, err := split.File(ctx, path, split.Options{
			Limit:          b.splitLimit(),
			OutputDir:      b.outputDir(path),
			DeleteOriginal: b.DeleteOriginal,
			PatchThreshold: e.cfg.SplitPatchThreshold,
			BufferSize:     e.cfg.BufferSize,
			Reporter:       rep,
		})
		if err != nil {
			return err
		}
		sum.Outputs = append(sum.Outputs, parts...)

		rep.Printf("File splitting complete!")
		return nil
	})
}

func isWAV(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return true
	}

	return false
}

// analyseGain prints the peak and RMS level of every file and, with
// GenerateGraph, charts them per waveform window.
func (e *Engine) analyseGain(ctx context.Context, rep *progress.Reporter, sum *Summary, b Batch) error {
	return e.eachFile(ctx, rep, sum, b.Files, func(path string) error {
		rep.Printf("Analysing file: %s", filepath.Base(path))
		buf, err := e.load(ctx, rep, path, e.cfg.GainFileSizeLimit)
		if err != nil {
			return err
		}
		rate, bits := buf.Format.SampleRate, buf.Format.BitDepth

		g, err := analysis.MeasureGain(ctx, buf.Samples, bits)
		if err != nil {
			return err
		}

		if b.GenerateGraph {
			rep.Printf("Generating output files...")
			rep.Restart()
			windows, err := analysis.Waveform(ctx, buf.Samples, rate, bits, b.WaveformSeconds, rep)
			if err != nil {
				return err
			}

			peak := make([]float64, len(windows))
			rms := make([]float64, len(windows))
			for i, w := range windows {
				peak[i], rms[i] = w.PeakDBFS, w.RMSDBFS
			}

			c := e.chart(path, b.outputDir(path), PrefixGain, "Decibels", []series.Series{
				{Label: "Peak", Color: series.Red, Points: series.Timeline(peak, b.WaveformSeconds)},
				{Label: "RMS", Color: series.Blue, Points: series.Timeline(rms, b.WaveformSeconds)},
			})
			c.Legend = true
			if err := e.emit(ctx, sum, c); err != nil {
				return err
			}
		}

		rep.Printf("File Peak: %.*f dBFS", b.GainPrecision, g.PeakDBFS)
		rep.Printf("File RMS: %.*f dBFS", b.GainPrecision, g.RMSDBFS)
		rep.Printf("--------------------")
		return nil
	})
}

func (e *Engine) scanOptions(rep *progress.Reporter, k scale.Kind) analysis.ScanOptions {
	return analysis.ScanOptions{WindowSeconds: e.cfg.TimeScale, Scale: k, Reporter: rep}
}
