// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ik5/audiscope/analysis"
	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/internal/audiotest"
	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/scale"
	"github.com/ik5/audiscope/series"
)

var mono16 = audio.Format{SampleRate: 100, BitDepth: 16, Channels: 1}

func writeWAV(t *testing.T, dir, name string, f audio.Format, samples []int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, audiotest.WAV(f, samples), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func newEngine(t *testing.T, sink progress.Sink, mutate func(*Config)) (*Engine, *series.Collector) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BufferSize = MinBufferSize
	cfg.Optimisation = 0
	if mutate != nil {
		mutate(&cfg)
	}

	charts := &series.Collector{}
	e, err := New(cfg, sink, charts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return e, charts
}

func checkLines(t *testing.T, got, want []string) {
	t.Helper()

	if !slices.Equal(got, want) {
		t.Errorf("lines:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRun_LoopScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeWAV(t, dir, "a.wav", mono16, audiotest.Tile(audiotest.Noise(150, 20000, 9), 2000))
	fast := audio.Format{SampleRate: 200, BitDepth: 16, Channels: 1}
	b := writeWAV(t, dir, "b.wav", fast, audiotest.Tile(audiotest.Noise(300, 20000, 10), 4000))

	sink := &progress.Buffer{}
	e, charts := newEngine(t, sink, nil)

	sum, err := e.Run(context.Background(), Batch{
		Tool:   ToolLoop,
		Files:  []string{a, b},
		Loop:   LoopEstimate,
		Param1: 1,
		Param2: 2,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	checkLines(t, sink.Lines(), []string{
		"Loading file: a.wav",
		"Calculating length of audio loop...",
		"Analysing audio quality...",
		"Generating output files...",
		"Analysis complete!",
		"Loading file: b.wav",
		"Analysing audio quality...",
		"Generating output files...",
		"Analysis complete!",
		"All done! Check 'AS Loop' files for analysis results.",
		Separator,
	})

	if sum.Files != 2 || sum.Failed != 0 || sum.Cancelled {
		t.Errorf("summary = %+v", sum)
	}
	if len(charts.Charts) != 2 {
		t.Fatalf("got %d charts, want 2", len(charts.Charts))
	}

	c := charts.Charts[0]
	if c.Name != "[AS Loop] a_wav" || c.Dir != dir || c.Title != "Audiscope Output\na.wav" {
		t.Errorf("chart = %q in %q titled %q", c.Name, c.Dir, c.Title)
	}
	if c.YLabel != "Variance (Logarithmic [base 10] Scale)" || c.XLabel != "Time" {
		t.Errorf("labels = %q, %q", c.XLabel, c.YLabel)
	}
	if c.Format != series.PDF || c.Resolution != series.QHD {
		t.Errorf("format = %v at %v", c.Format, c.Resolution)
	}
	if sum.Outputs[0] != filepath.Join(dir, "[AS Loop] a_wav.pdf") {
		t.Errorf("Outputs[0] = %q", sum.Outputs[0])
	}

	// Both files repeat exactly, at 150 frames and at 300 frames, so every
	// window is a perfect match.
	floor, _ := scale.Logarithmic.Apply(0)
	for i, c := range charts.Charts {
		if len(c.Series) != 3 {
			t.Fatalf("chart %d has %d series", i, len(c.Series))
		}
		raw := c.Series[2]
		if raw.Label != "Raw Data" || len(raw.Points) != 18 {
			t.Errorf("chart %d raw series %q has %d points, want 18", i, raw.Label, len(raw.Points))
		}
		for _, p := range raw.Points {
			if p.Value != floor {
				t.Errorf("chart %d point at %gs = %g, want %g", i, p.Seconds, p.Value, floor)
				break
			}
		}
	}
}

func TestRun_LoopScanNoLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeWAV(t, dir, "short.wav", mono16, audiotest.Noise(200, 1000, 3))

	sink := &progress.Buffer{}
	e, charts := newEngine(t, sink, nil)

	sum, err := e.Run(context.Background(), Batch{Tool: ToolLoop, Files: []string{a}, Loop: LoopEstimate, Param1: 5, Param2: 6})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := sink.Lines()
	if len(lines) != 5 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[2], "Error: ") || !strings.Contains(lines[2], analysis.ErrNoLoopFound.Error()) {
		t.Errorf("error line = %q", lines[2])
	}
	if sum.Failed != 1 || sum.Files != 0 || len(charts.Charts) != 0 {
		t.Errorf("summary = %+v, %d charts", sum, len(charts.Charts))
	}
}

func TestRun_LoopScanSine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeWAV(t, dir, "tone.wav", mono16, audiotest.Noise(2000, 1000, 4))

	sink := &progress.Buffer{}
	e, charts := newEngine(t, sink, nil)

	if _, err := e.Run(context.Background(), Batch{Tool: ToolLoop, Files: []string{a}, Loop: LoopSine}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if slices.Contains(sink.Lines(), "Calculating length of audio loop...") {
		t.Error("sine scan estimated a loop length")
	}
	// Loops of 5 s; windows of 1 s start after 6 s.
	if got := len(charts.Charts[0].Series[2].Points); got != 14 {
		t.Errorf("got %d points, want 14", got)
	}
}

func TestRun_LinearScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode   LinearMode
		names  []string
		series int
		lines  []string
	}{
		{
			mode:   LinearCombined,
			names:  []string{"[AS Linear] l_wav"},
			series: 6,
			lines: []string{
				"Analysing audio quality (1/2)...",
				"Analysing audio quality (2/2)...",
				"Consolidating analysis results...",
			},
		},
		{
			mode:   LinearSeparate,
			names:  []string{"[AS Linear 1] l_wav", "[AS Linear 2] l_wav"},
			series: 3,
			lines: []string{
				"Analysing audio quality (1/2)...",
				"Analysing audio quality (2/2)...",
				"Consolidating analysis results...",
			},
		},
		{
			mode:   LinearCutout,
			names:  []string{"[AS Linear] l_wav"},
			series: 3,
			lines:  []string{"Analysing audio quality..."},
		},
		{
			mode:   LinearGradient,
			names:  []string{"[AS Linear] l_wav"},
			series: 3,
			lines:  []string{"Analysing audio quality..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeWAV(t, dir, "l.wav", mono16, audiotest.Noise(1000, 20000, 5))

			sink := &progress.Buffer{}
			e, charts := newEngine(t, sink, func(c *Config) { c.LinearMode = tt.mode })

			if _, err := e.Run(context.Background(), Batch{Tool: ToolLinear, Files: []string{path}}); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			want := append([]string{"Loading file: l.wav"}, tt.lines...)
			want = append(want,
				"Generating output files...",
				"Analysis complete!",
				"All done! Check 'AS Linear' files for analysis results.",
				Separator,
			)
			checkLines(t, sink.Lines(), want)

			var names []string
			for _, c := range charts.Charts {
				names = append(names, c.Name)
				if len(c.Series) != tt.series {
					t.Errorf("%s has %d series, want %d", c.Name, len(c.Series), tt.series)
				}
				if c.YLabel != "Frame Loss Probability (Linear Scale)" {
					t.Errorf("YLabel = %q", c.YLabel)
				}
				for _, s := range c.Series {
					if len(s.Points) != 10 {
						t.Errorf("%s %q has %d points, want 10", c.Name, s.Label, len(s.Points))
					}
				}
			}
			if !slices.Equal(names, tt.names) {
				t.Errorf("charts = %q, want %q", names, tt.names)
			}
		})
	}
}

func TestRun_Split(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), t.TempDir()
	stereo := audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2}
	path := writeWAV(t, in, "s.wav", stereo, audiotest.Noise(2*289, 20000, 6))

	sink := &progress.Buffer{}
	e, _ := newEngine(t, sink, nil)

	sum, err := e.Run(context.Background(), Batch{Tool: ToolSplit, Files: []string{path}, OutputDir: out, SplitGB: 4e-7})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	checkLines(t, sink.Lines(), []string{
		"Splitting file: s.wav",
		"Saving file: s (3).wav",
		"Saving file: s (2).wav",
		"Saving file: s (1).wav",
		"File splitting complete!",
		"All done! Output files end with (1), (2), etc.",
		Separator,
	})

	want := []string{
		filepath.Join(out, "s (1).wav"),
		filepath.Join(out, "s (2).wav"),
		filepath.Join(out, "s (3).wav"),
	}
	if !slices.Equal(sum.Outputs, want) {
		t.Errorf("Outputs = %q, want %q", sum.Outputs, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("source removed: %v", err)
	}
}

func TestRun_InvalidBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		batches []Batch
		done    string
	}{
		{"no batches", nil, "All done! Check 'AS Loop' files for analysis results."},
		{"zero split time", []Batch{{Tool: ToolSplit, Split: SplitTime}}, "All done! Output files end with (1), (2), etc."},
		{"mixed tools", []Batch{{Tool: ToolGain}, {Tool: ToolSplit, SplitGB: 1}}, "All done!"},
		{"bad loop kind", []Batch{{Tool: ToolLoop, Loop: LoopKind(9)}}, "All done! Check 'AS Loop' files for analysis results."},
		{"bad tool", []Batch{{Tool: Tool(7)}}, "All done!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sink := &progress.Buffer{}
			e, _ := newEngine(t, sink, nil)

			_, err := e.Run(context.Background(), tt.batches...)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Run() error = %v, want ErrInvalidParameter", err)
			}

			lines := sink.Lines()
			if len(lines) != 3 || !strings.HasPrefix(lines[0], "Error: ") || lines[1] != tt.done || lines[2] != Separator {
				t.Errorf("lines = %q", lines)
			}
		})
	}
}

func TestRun_Gain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "g.wav", mono16, audiotest.Square(250, 10, 32767, -32768))

	t.Run("text only", func(t *testing.T) {
		t.Parallel()

		sink := &progress.Buffer{}
		e, charts := newEngine(t, sink, nil)

		if _, err := e.Run(context.Background(), Batch{Tool: ToolGain, Files: []string{path}, GainPrecision: 2}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		checkLines(t, sink.Lines(), []string{
			"Analysing file: g.wav",
			"File Peak: 0.00 dBFS",
			"File RMS: 0.00 dBFS",
			"--------------------",
			"All done!",
			Separator,
		})
		if len(charts.Charts) != 0 {
			t.Errorf("got %d charts without GenerateGraph", len(charts.Charts))
		}
	})

	t.Run("with graph", func(t *testing.T) {
		t.Parallel()

		sink := &progress.Buffer{}
		e, charts := newEngine(t, sink, nil)

		if _, err := e.Run(context.Background(), Batch{Tool: ToolGain, Files: []string{path}, GenerateGraph: true}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		checkLines(t, sink.Lines(), []string{
			"Analysing file: g.wav",
			"Generating output files...",
			"File Peak: 0.000 dBFS",
			"File RMS: 0.000 dBFS",
			"--------------------",
			"All done! Check 'AS Gain' files for analysis results.",
			Separator,
		})

		if len(charts.Charts) != 1 {
			t.Fatalf("got %d charts, want 1", len(charts.Charts))
		}
		c := charts.Charts[0]
		if c.Name != "[AS Gain] g_wav" || c.YLabel != "Decibels" || !c.Legend {
			t.Errorf("chart = %q %q legend %v", c.Name, c.YLabel, c.Legend)
		}
		if len(c.Series) != 2 || c.Series[0].Label != "Peak" || c.Series[0].Color != series.Red || c.Series[1].Label != "RMS" {
			t.Fatalf("series = %+v", c.Series)
		}
		want := []series.Point{{Seconds: 1, Value: 0}, {Seconds: 2, Value: 0}}
		if !slices.Equal(c.Series[0].Points, want) {
			t.Errorf("peak points = %v, want %v", c.Series[0].Points, want)
		}
	})
}

func TestRun_MultipleBatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "g.wav", mono16, audiotest.Square(100, 10, 32767, -32768))

	sink := &progress.Buffer{}
	e, _ := newEngine(t, sink, nil)

	b := Batch{Tool: ToolGain, Files: []string{path}, GainPrecision: 1}
	if _, err := e.Run(context.Background(), b, b); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	file := []string{"Analysing file: g.wav", "File Peak: 0.0 dBFS", "File RMS: 0.0 dBFS", "--------------------"}
	var want []string
	want = append(want, file...)
	want = append(want, "--- Batch 1/2 completed ---", Separator)
	want = append(want, file...)
	want = append(want, "--- Batch 2/2 completed ---", Separator, "All done!", Separator)
	checkLines(t, sink.Lines(), want)
}

func TestRun_FileErrorsContinue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeWAV(t, dir, "g.wav", mono16, audiotest.Square(100, 10, 100, -100))
	big := writeWAV(t, dir, "big.wav", mono16, audiotest.Noise(1000, 100, 1))
	mp3 := filepath.Join(dir, "x.mp3")
	if err := os.WriteFile(mp3, []byte("not an mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	sink := &progress.Buffer{}
	e, _ := newEngine(t, sink, func(c *Config) { c.GainFileSizeLimit = 1000 })

	files := []string{filepath.Join(dir, "missing.wav"), mp3, big, good}
	sum, err := e.Run(context.Background(), Batch{Tool: ToolGain, Files: files})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sum.Files != 1 || sum.Failed != 3 {
		t.Errorf("summary = %+v", sum)
	}

	var errs []string
	for _, l := range sink.Lines() {
		if strings.HasPrefix(l, "Error: ") {
			errs = append(errs, l)
		}
	}
	if len(errs) != 3 {
		t.Fatalf("error lines = %q", errs)
	}
	if !strings.Contains(errs[2], ErrFileTooLarge.Error()) {
		t.Errorf("size error = %q", errs[2])
	}
}

func TestRun_ConsumerError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "g.wav", mono16, audiotest.Square(200, 10, 100, -100))

	errDisk := errors.New("disk full")
	sink := &progress.Buffer{}
	cfg := DefaultConfig()
	cfg.BufferSize = MinBufferSize
	e, err := New(cfg, sink, series.ConsumerFunc(func(context.Context, series.Chart) error { return errDisk }))
	if err != nil {
		t.Fatal(err)
	}

	sum, err := e.Run(context.Background(), Batch{Tool: ToolGain, Files: []string{path}, GenerateGraph: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Failed != 1 || len(sum.Outputs) != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if !slices.ContainsFunc(sink.Lines(), func(l string) bool { return strings.Contains(l, "disk full") }) {
		t.Errorf("lines = %q", sink.Lines())
	}
}

// jsonStore stores charts as JSON next to their image path.
type jsonStore struct{ series.Collector }

func (s *jsonStore) Path(c series.Chart) string {
	return filepath.Join(c.Dir, c.Name+".json")
}

func TestRun_OutputsFollowConsumer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "g.wav", mono16, audiotest.Square(200, 10, 100, -100))

	store := &jsonStore{}
	cfg := DefaultConfig()
	cfg.BufferSize = MinBufferSize
	e, err := New(cfg, &progress.Buffer{}, store)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := e.Run(context.Background(), Batch{Tool: ToolGain, Files: []string{path}, GenerateGraph: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.Charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(store.Charts))
	}
	want := []string{filepath.Join(dir, store.Charts[0].Name+".json")}
	if !slices.Equal(sum.Outputs, want) {
		t.Errorf("Outputs = %q, want %q", sum.Outputs, want)
	}
}

// cancelOn cancels a context when a given line is appended.
type cancelOn struct {
	progress.Buffer
	line   string
	cancel context.CancelFunc
}

func (c *cancelOn) Append(line string) {
	c.Buffer.Append(line)
	if line == c.line {
		c.cancel()
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		batch func(t *testing.T, dir string) Batch
	}{
		{
			name: "loop scan",
			line: "Analysing audio quality...",
			batch: func(t *testing.T, dir string) Batch {
				a := writeWAV(t, dir, "a.wav", mono16, audiotest.Noise(3000, 1000, 2))
				return Batch{Tool: ToolLoop, Files: []string{a, a}, Loop: LoopNoise}
			},
		},
		{
			name: "split",
			line: "Splitting file: s.wav",
			batch: func(t *testing.T, dir string) Batch {
				s := writeWAV(t, dir, "s.wav", mono16, audiotest.Noise(3000, 1000, 2))
				return Batch{Tool: ToolSplit, Files: []string{s}, SplitGB: 1e-6}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			b := tt.batch(t, dir)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sink := &cancelOn{line: tt.line, cancel: cancel}
			e, charts := newEngine(t, sink, nil)

			sum, err := e.Run(ctx, b)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !sum.Cancelled {
				t.Error("Summary.Cancelled = false")
			}
			if lines := sink.Lines(); len(lines) != 0 {
				t.Errorf("sink not cleared: %q", lines)
			}
			if len(charts.Charts) != 0 {
				t.Errorf("got %d charts", len(charts.Charts))
			}

			entries, _ := os.ReadDir(dir)
			if len(entries) != 1 {
				t.Errorf("directory holds %d entries, want only the source", len(entries))
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.TimeScale = 3
	if _, err := New(cfg, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("New() error = %v, want ErrInvalidParameter", err)
	}
}
