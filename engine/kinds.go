// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"strings"
)

// Tool is the analysis applied to every file of a batch.
type Tool int

const (
	ToolLoop Tool = iota
	ToolLinear
	ToolSplit
	ToolGain
)

var toolNames = map[string]Tool{
	"loop": ToolLoop, "loop scan": ToolLoop,
	"linear": ToolLinear, "linear scan": ToolLinear,
	"split": ToolSplit, "file split": ToolSplit,
	"gain": ToolGain, "analyse gain": ToolGain,
}

var toolLabels = [...]string{
	ToolLoop:   "Loop Scan",
	ToolLinear: "Linear Scan",
	ToolSplit:  "File Split",
	ToolGain:   "Analyse Gain",
}

func (t Tool) String() string { return label(toolLabels[:], t, "Tool") }

func (t *Tool) UnmarshalText(text []byte) error {
	return parseName(toolNames, "tool", string(text), t)
}

// LoopKind selects how the loop length of a loop scan is found.
type LoopKind int

const (
	// LoopTempo brackets the length from a tempo (BPM) and a beat count.
	LoopTempo LoopKind = iota
	// LoopEstimate searches between a minimum and a maximum in seconds.
	LoopEstimate
	// LoopAuto searches from one second upwards and stops early.
	LoopAuto
	// LoopSine treats the signal as a run of Config.SineScanWindow loops.
	LoopSine
	// LoopNoise treats the signal as a run of Config.NoiseScanWindow loops.
	LoopNoise
)

var loopNames = map[string]LoopKind{
	"tempo": LoopTempo, "tempo/beats (music)": LoopTempo,
	"range": LoopEstimate, "estimate range (music)": LoopEstimate,
	"auto": LoopAuto, "automatic (music)": LoopAuto,
	"sine": LoopSine, "sine tone": LoopSine,
	"noise": LoopNoise,
}

var loopLabels = [...]string{
	LoopTempo:    "Tempo/Beats (Music)",
	LoopEstimate: "Estimate Range (Music)",
	LoopAuto:     "Automatic (Music)",
	LoopSine:     "Sine Tone",
	LoopNoise:    "Noise",
}

func (k LoopKind) String() string { return label(loopLabels[:], k, "LoopKind") }

// Music reports whether the loop length has to be estimated.
func (k LoopKind) Music() bool { return k == LoopTempo || k == LoopEstimate || k == LoopAuto }

func (k *LoopKind) UnmarshalText(text []byte) error {
	return parseName(loopNames, "loop kind", string(text), k)
}

// LinearMode selects the detectors of a linear scan.
type LinearMode int

const (
	LinearCutout LinearMode = iota
	LinearGradient
	// LinearCombined runs both detectors and draws them on one chart.
	LinearCombined
	// LinearSeparate runs both detectors and draws one chart each.
	LinearSeparate
)

var linearNames = map[string]LinearMode{
	"cutout": LinearCutout, "signal cutout": LinearCutout,
	"gradient": LinearGradient, "signal gradient": LinearGradient,
	"combined": LinearCombined, "dual (combined graph)": LinearCombined,
	"separate": LinearSeparate, "dual (separate graphs)": LinearSeparate,
}

var linearLabels = [...]string{
	LinearCutout:   "Signal Cutout",
	LinearGradient: "Signal Gradient",
	LinearCombined: "Dual (Combined Graph)",
	LinearSeparate: "Dual (Separate Graphs)",
}

func (m LinearMode) String() string { return label(linearLabels[:], m, "LinearMode") }

// Dual reports whether both detectors run.
func (m LinearMode) Dual() bool { return m == LinearCombined || m == LinearSeparate }

func (m *LinearMode) UnmarshalText(text []byte) error {
	return parseName(linearNames, "linear mode", string(text), m)
}

// SplitKind selects whether parts are bounded by size or by duration.
type SplitKind int

const (
	SplitSize SplitKind = iota
	SplitTime
)

var splitNames = map[string]SplitKind{"size": SplitSize, "time": SplitTime}

var splitLabels = [...]string{SplitSize: "Size", SplitTime: "Time"}

func (k SplitKind) String() string { return label(splitLabels[:], k, "SplitKind") }

func (k *SplitKind) UnmarshalText(text []byte) error {
	return parseName(splitNames, "split kind", string(text), k)
}

func label[T ~int](labels []string, v T, typ string) string {
	if v < 0 || int(v) >= len(labels) {
		return fmt.Sprintf("%s(%d)", typ, int(v))
	}

	return labels[v]
}

func valid[T ~int](labels []string, v T) bool {
	return v >= 0 && int(v) < len(labels)
}

func parseName[T ~int](names map[string]T, what, s string, dst *T) error {
	v, ok := names[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidParameter, what, s)
	}
	*dst = v

	return nil
}
