// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/scale"
	"github.com/ik5/audiscope/series"
	"github.com/ik5/audiscope/split"
)

// Accepted values of the enumerated settings.
var (
	ScanWindows    = []int{1, 2, 5, 10, 20, 30}
	Optimisations  = []int{0, 1, 2, 5}
	TimeScales     = []int{1, 2, 5, 10}
	GainPrecisions = []int{1, 2, 3, 4, 5, 6}
)

const (
	MinBufferSize = 1_000
	MaxBufferSize = 1_000_000_000

	// DefaultFileSizeLimit bounds the files the scanners load into memory.
	DefaultFileSizeLimit = 4_200_000_000

	DefaultWaveformSeconds = 1.0
	DefaultGainPrecision   = 3
)

// Config holds the settings shared by every batch of a run.
type Config struct {
	// BufferSize is the read and copy chunk size in bytes.
	BufferSize int
	// Scan windows in seconds: the early stop distance of an automatic
	// loop search and the loop length of sine and noise scans.
	AutoScanWindow  int
	SineScanWindow  int
	NoiseScanWindow int
	// Optimisation thins the loop length comparison; 0 compares every
	// frame.
	Optimisation     int
	LinearMode       LinearMode
	VarianceScale    scale.Kind
	ProbabilityScale scale.Kind
	// TimeScale is the width of one chart point in seconds.
	TimeScale        int
	OutputFormat     series.Format
	Resolution       series.Resolution
	ProgressInterval time.Duration

	LoopFileSizeLimit   int64
	LinearFileSizeLimit int64
	GainFileSizeLimit   int64
	// SplitFileSizeLimit applies to AIFF and AU sources only; WAV sources
	// above SplitPatchThreshold are split by patching their header.
	SplitFileSizeLimit  int64
	SplitPatchThreshold int64

	MaxBitDepth   int
	MaxSampleRate int
}

func DefaultConfig() Config {
	return Config{
		BufferSize:          audio.DefaultBufferSize,
		AutoScanWindow:      10,
		SineScanWindow:      5,
		NoiseScanWindow:     10,
		Optimisation:        1,
		LinearMode:          LinearCombined,
		VarianceScale:       scale.Logarithmic,
		ProbabilityScale:    scale.Linear,
		TimeScale:           1,
		OutputFormat:        series.PDF,
		Resolution:          series.QHD,
		ProgressInterval:    progress.DefaultInterval,
		LoopFileSizeLimit:   DefaultFileSizeLimit,
		LinearFileSizeLimit: DefaultFileSizeLimit,
		GainFileSizeLimit:   DefaultFileSizeLimit,
		SplitFileSizeLimit:  split.DefaultPatchThreshold,
		SplitPatchThreshold: split.DefaultPatchThreshold,
		MaxBitDepth:         audio.DefaultMaxBitDepth,
		MaxSampleRate:       audio.DefaultMaxSampleRate,
	}
}

// Validate reports the first setting outside its accepted values.
func (c Config) Validate() error {
	oneOf := func(name string, v int, allowed []int) error {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("%w: %s %d not in %v", ErrInvalidParameter, name, v, allowed)
		}
		return nil
	}

	if c.BufferSize < MinBufferSize || c.BufferSize > MaxBufferSize {
		return fmt.Errorf("%w: buffer size %d outside [%d, %d]", ErrInvalidParameter, c.BufferSize, MinBufferSize, MaxBufferSize)
	}
	for _, err := range []error{
		oneOf("auto scan window", c.AutoScanWindow, ScanWindows),
		oneOf("sine scan window", c.SineScanWindow, ScanWindows),
		oneOf("noise scan window", c.NoiseScanWindow, ScanWindows),
		oneOf("optimisation", c.Optimisation, Optimisations),
		oneOf("time scale", c.TimeScale, TimeScales),
	} {
		if err != nil {
			return err
		}
	}

	if !valid(linearLabels[:], c.LinearMode) {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, c.LinearMode)
	}
	if !slices.Contains(scale.Kinds(), c.VarianceScale) {
		return fmt.Errorf("%w: variance scale %v", ErrInvalidParameter, c.VarianceScale)
	}
	if !slices.Contains(scale.Kinds(), c.ProbabilityScale) {
		return fmt.Errorf("%w: probability scale %v", ErrInvalidParameter, c.ProbabilityScale)
	}
	if _, err := c.OutputFormat.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if !slices.Contains(series.Resolutions(), c.Resolution) {
		return fmt.Errorf("%w: resolution %v", ErrInvalidParameter, c.Resolution)
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("%w: progress interval %v", ErrInvalidParameter, c.ProgressInterval)
	}

	for _, l := range []struct {
		name  string
		limit int64
	}{
		{"loop file size limit", c.LoopFileSizeLimit},
		{"linear file size limit", c.LinearFileSizeLimit},
		{"gain file size limit", c.GainFileSizeLimit},
		{"split file size limit", c.SplitFileSizeLimit},
		{"split patch threshold", c.SplitPatchThreshold},
	} {
		if l.limit <= 0 {
			return fmt.Errorf("%w: %s %d", ErrInvalidParameter, l.name, l.limit)
		}
	}

	if c.MaxBitDepth < 8 || c.MaxBitDepth > 32 {
		return fmt.Errorf("%w: max bit depth %d", ErrInvalidParameter, c.MaxBitDepth)
	}
	if c.MaxSampleRate < 1 {
		return fmt.Errorf("%w: max sample rate %d", ErrInvalidParameter, c.MaxSampleRate)
	}

	return nil
}

func (c Config) readOptions(rep *progress.Reporter) audio.ReadOptions {
	return audio.ReadOptions{
		BufferSize:    c.BufferSize,
		MaxBitDepth:   c.MaxBitDepth,
		MaxSampleRate: c.MaxSampleRate,
		Reporter:      rep,
	}
}
