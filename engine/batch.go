// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"path/filepath"

	"github.com/ik5/audiscope/analysis"
	"github.com/ik5/audiscope/split"
)

// Batch is one group of files processed with the same parameters. Files
// of a loop scan batch share the loop length found in the first file.
type Batch struct {
	Tool  Tool
	Files []string

	// OutputDir receives charts and parts. UseInputFolder, or an empty
	// OutputDir, writes next to each input file instead.
	OutputDir      string
	UseInputFolder bool

	Loop LoopKind
	// Param1 and Param2 are the tempo (BPM) and beat count of LoopTempo,
	// or the minimum and maximum seconds of LoopEstimate.
	Param1, Param2 int

	Split        SplitKind
	SplitGB      float64
	SplitMinutes int
	SplitSeconds int

	// WaveformSeconds is the gain chart window. Zero means
	// DefaultWaveformSeconds.
	WaveformSeconds float64
	// GainPrecision is the number of decimals of the gain lines. Zero
	// means DefaultGainPrecision.
	GainPrecision int

	DeleteOriginal bool
	GenerateGraph  bool
}

func (b Batch) withDefaults() Batch {
	if b.WaveformSeconds == 0 {
		b.WaveformSeconds = DefaultWaveformSeconds
	}
	if b.GainPrecision == 0 {
		b.GainPrecision = DefaultGainPrecision
	}

	return b
}

// Validate checks the parameters the batch's tool uses.
func (b Batch) Validate() error {
	b = b.withDefaults()

	if !valid(toolLabels[:], b.Tool) {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, b.Tool)
	}

	switch b.Tool {
	case ToolLoop:
		if !valid(loopLabels[:], b.Loop) {
			return fmt.Errorf("%w: %v", ErrInvalidParameter, b.Loop)
		}
		if b.Loop == LoopTempo && (b.Param1 <= 0 || b.Param2 <= 0) {
			return fmt.Errorf("%w: tempo %d and beats %d must be positive", ErrInvalidParameter, b.Param1, b.Param2)
		}
		if b.Loop == LoopEstimate && (b.Param2 < 1 || b.Param2 < b.Param1) {
			return fmt.Errorf("%w: loop range %d-%d s", ErrInvalidParameter, b.Param1, b.Param2)
		}

	case ToolSplit:
		switch b.Split {
		case SplitSize:
			if b.SplitGB <= 0 {
				return fmt.Errorf("%w: split size %g GB", ErrInvalidParameter, b.SplitGB)
			}
		case SplitTime:
			if b.SplitMinutes < 0 || b.SplitSeconds < 0 || b.SplitMinutes*60+b.SplitSeconds == 0 {
				return fmt.Errorf("%w: split time %dm%ds", ErrInvalidParameter, b.SplitMinutes, b.SplitSeconds)
			}
		default:
			return fmt.Errorf("%w: %v", ErrInvalidParameter, b.Split)
		}

	case ToolGain:
		if b.WaveformSeconds <= 0 {
			return fmt.Errorf("%w: waveform window %g s", ErrInvalidParameter, b.WaveformSeconds)
		}
		if b.GainPrecision < 1 || b.GainPrecision > 6 {
			return fmt.Errorf("%w: gain precision %d", ErrInvalidParameter, b.GainPrecision)
		}
	}

	return nil
}

// outputDir is where results for the input file at path go.
func (b Batch) outputDir(path string) string {
	if b.UseInputFolder || b.OutputDir == "" {
		return filepath.Dir(path)
	}

	return b.OutputDir
}

// loopRange is the search range of a music loop scan over n frames.
func (b Batch) loopRange(n, rate int) analysis.LoopRange {
	switch b.Loop {
	case LoopTempo:
		return analysis.TempoRange(float64(b.Param1), float64(b.Param2), rate)
	case LoopEstimate:
		return analysis.SecondsRange(b.Param1, b.Param2, rate)
	}

	return analysis.AutoRange(n, rate)
}

func (b Batch) splitLimit() split.Limit {
	if b.Split == SplitTime {
		return split.Limit{Minutes: b.SplitMinutes, Seconds: b.SplitSeconds}
	}

	return split.Limit{Bytes: split.SizeLimit(b.SplitGB)}
}
