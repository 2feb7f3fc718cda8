// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/audiscope/engine"
	"github.com/ik5/audiscope/internal/cli"
	"github.com/ik5/audiscope/internal/export"
	"github.com/ik5/audiscope/internal/ui"
	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/scale"
	"github.com/ik5/audiscope/series"
	"github.com/mattn/go-isatty"
)

var version = "0.1.0"

// Settings mirrors engine.Config; defaults come from engine.DefaultConfig.
type Settings struct {
	BufferSize       int               `default:"${buffer_size}" help:"Read and copy chunk size in bytes."`
	AutoWindow       int               `default:"${auto_window}" placeholder:"SECONDS" help:"Early stop distance of an automatic loop search."`
	SineWindow       int               `default:"${sine_window}" placeholder:"SECONDS" help:"Loop length of a sine tone scan."`
	NoiseWindow      int               `default:"${noise_window}" placeholder:"SECONDS" help:"Loop length of a noise scan."`
	Optimisation     int               `default:"${optimisation}" help:"Loop length comparison stride (0, 1, 2 or 5)."`
	LinearMode       engine.LinearMode `default:"${linear_mode}" help:"cutout, gradient, combined or separate."`
	VarianceScale    scale.Kind        `default:"${variance_scale}" help:"Scale of loop variances."`
	ProbabilityScale scale.Kind        `default:"${probability_scale}" help:"Scale of linear defect probabilities."`
	TimeScale        int               `default:"${time_scale}" placeholder:"SECONDS" help:"Width of one chart point (1, 2, 5 or 10)."`
	Format           series.Format     `default:"${format}" help:"Chart image format (pdf, jpg, png, svg)."`
	Resolution       series.Resolution `default:"${resolution}" help:"Chart resolution (hd, fhd, qhd, uhd)."`
	ProgressInterval time.Duration     `default:"${progress_interval}" help:"Minimum time between progress updates."`
	LoopLimit        int64             `default:"${loop_limit}" placeholder:"BYTES" help:"Largest file a loop scan accepts."`
	LinearLimit      int64             `default:"${linear_limit}" placeholder:"BYTES" help:"Largest file a linear scan accepts."`
	GainLimit        int64             `default:"${gain_limit}" placeholder:"BYTES" help:"Largest file a gain analysis accepts."`
	SplitLimit       int64             `default:"${split_limit}" placeholder:"BYTES" help:"Largest AIFF or AU file the splitter accepts."`
	PatchThreshold   int64             `default:"${patch_threshold}" placeholder:"BYTES" help:"WAV size from which parts get a patched header."`
	MaxBitDepth      int               `default:"${max_bit_depth}" help:"Highest accepted bit depth."`
	MaxSampleRate    int               `default:"${max_sample_rate}" help:"Highest accepted sample rate."`
}

func (s Settings) config() engine.Config {
	return engine.Config{
		BufferSize:          s.BufferSize,
		AutoScanWindow:      s.AutoWindow,
		SineScanWindow:      s.SineWindow,
		NoiseScanWindow:     s.NoiseWindow,
		Optimisation:        s.Optimisation,
		LinearMode:          s.LinearMode,
		VarianceScale:       s.VarianceScale,
		ProbabilityScale:    s.ProbabilityScale,
		TimeScale:           s.TimeScale,
		OutputFormat:        s.Format,
		Resolution:          s.Resolution,
		ProgressInterval:    s.ProgressInterval,
		LoopFileSizeLimit:   s.LoopLimit,
		LinearFileSizeLimit: s.LinearLimit,
		GainFileSizeLimit:   s.GainLimit,
		SplitFileSizeLimit:  s.SplitLimit,
		SplitPatchThreshold: s.PatchThreshold,
		MaxBitDepth:         s.MaxBitDepth,
		MaxSampleRate:       s.MaxSampleRate,
	}
}

func vars(cfg engine.Config) kong.Vars {
	itoa := strconv.Itoa
	i64 := func(v int64) string { return strconv.FormatInt(v, 10) }

	return kong.Vars{
		"version":           version,
		"buffer_size":       itoa(cfg.BufferSize),
		"auto_window":       itoa(cfg.AutoScanWindow),
		"sine_window":       itoa(cfg.SineScanWindow),
		"noise_window":      itoa(cfg.NoiseScanWindow),
		"optimisation":      itoa(cfg.Optimisation),
		"linear_mode":       cfg.LinearMode.String(),
		"variance_scale":    cfg.VarianceScale.String(),
		"probability_scale": cfg.ProbabilityScale.String(),
		"time_scale":        itoa(cfg.TimeScale),
		"format":            cfg.OutputFormat.String(),
		"resolution":        cfg.Resolution.Name,
		"progress_interval": cfg.ProgressInterval.String(),
		"loop_limit":        i64(cfg.LoopFileSizeLimit),
		"linear_limit":      i64(cfg.LinearFileSizeLimit),
		"gain_limit":        i64(cfg.GainFileSizeLimit),
		"split_limit":       i64(cfg.SplitFileSizeLimit),
		"patch_threshold":   i64(cfg.SplitPatchThreshold),
		"max_bit_depth":     itoa(cfg.MaxBitDepth),
		"max_sample_rate":   itoa(cfg.MaxSampleRate),
		"waveform_seconds":  strconv.FormatFloat(engine.DefaultWaveformSeconds, 'g', -1, 64),
		"gain_precision":    itoa(engine.DefaultGainPrecision),
	}
}

// CLI defines the command-line interface.
type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version information."`
	Config   kong.ConfigFlag  `short:"c" help:"JSON file with flag values."`
	Plain    bool             `help:"Print plain lines instead of the interactive view."`
	DebugLog string           `type:"path" placeholder:"FILE" help:"Write a timestamped trace of every status line."`
	Export   export.Encoding  `default:"json" help:"Chart data encoding (json or csv)."`
	ChartDir string           `type:"path" placeholder:"DIR" help:"Write chart data here instead of next to the input."`

	Settings `embed:"" group:"Engine"`

	Loop   loopCmd   `cmd:"" help:"Chart how much each loop of a repeated signal differs from the first."`
	Linear linearCmd `cmd:"" help:"Chart cutouts and sudden jumps along a recording."`
	Split  splitCmd  `cmd:"" help:"Cut files into numbered parts by size or duration."`
	Gain   gainCmd   `cmd:"" help:"Report peak and RMS level, optionally charting the waveform."`
	Run    runCmd    `cmd:"" help:"Run the batches described in a JSON file."`
}

type Output struct {
	OutDir string `short:"o" type:"path" placeholder:"DIR" help:"Output folder (default: next to each input)."`
}

type loopCmd struct {
	Kind  engine.LoopKind `short:"k" default:"auto" help:"tempo, range, auto, sine or noise."`
	Tempo int             `help:"Tempo in BPM (tempo kind)."`
	Beats int             `help:"Beats per loop (tempo kind)."`
	Min   int             `placeholder:"SECONDS" help:"Shortest loop (range kind)."`
	Max   int             `placeholder:"SECONDS" help:"Longest loop (range kind)."`

	Output `embed:""`

	Files []string `arg:"" type:"existingfile" help:"Audio files to scan."`
}

func (c *loopCmd) Run(a *app) error {
	b := engine.Batch{Tool: engine.ToolLoop, Files: c.Files, OutputDir: c.OutDir, Loop: c.Kind}
	switch c.Kind {
	case engine.LoopTempo:
		b.Param1, b.Param2 = c.Tempo, c.Beats
	case engine.LoopEstimate:
		b.Param1, b.Param2 = c.Min, c.Max
	}

	return a.run(b)
}

type linearCmd struct {
	Output `embed:""`

	Files []string `arg:"" type:"existingfile" help:"Audio files to scan."`
}

func (c *linearCmd) Run(a *app) error {
	return a.run(engine.Batch{Tool: engine.ToolLinear, Files: c.Files, OutputDir: c.OutDir})
}

type splitCmd struct {
	Size           float64 `placeholder:"GB" help:"Part size in gigabytes."`
	Minutes        int     `help:"Part duration, minutes."`
	Seconds        int     `help:"Part duration, seconds."`
	DeleteOriginal bool    `help:"Remove each source once it is split."`

	Output `embed:""`

	Files []string `arg:"" type:"existingfile" help:"Audio files to split."`
}

func (c *splitCmd) Run(a *app) error {
	b := engine.Batch{
		Tool:           engine.ToolSplit,
		Files:          c.Files,
		OutputDir:      c.OutDir,
		SplitGB:        c.Size,
		SplitMinutes:   c.Minutes,
		SplitSeconds:   c.Seconds,
		DeleteOriginal: c.DeleteOriginal,
	}
	if c.Size == 0 {
		b.Split = engine.SplitTime
	}

	return a.run(b)
}

type gainCmd struct {
	Graph     bool    `short:"g" help:"Chart peak and RMS per window."`
	Window    float64 `default:"${waveform_seconds}" placeholder:"SECONDS" help:"Waveform window."`
	Precision int     `short:"p" default:"${gain_precision}" help:"Decimal places of the report (1-6)."`

	Output `embed:""`

	Files []string `arg:"" type:"existingfile" help:"Audio files to analyse."`
}

func (c *gainCmd) Run(a *app) error {
	return a.run(engine.Batch{
		Tool:            engine.ToolGain,
		Files:           c.Files,
		OutputDir:       c.OutDir,
		WaveformSeconds: c.Window,
		GainPrecision:   c.Precision,
		GenerateGraph:   c.Graph,
	})
}

type runCmd struct {
	Batches string `arg:"" type:"existingfile" help:"JSON array of batches."`
}

func (c *runCmd) Run(a *app) error {
	data, err := os.ReadFile(c.Batches)
	if err != nil {
		return err
	}

	var batches []engine.Batch
	if err := json.Unmarshal(data, &batches); err != nil {
		return fmt.Errorf("%s: %w", c.Batches, err)
	}

	return a.run(batches...)
}

type app struct {
	cli    *CLI
	stdout io.Writer
	// failed is set when a file could not be processed.
	failed    bool
	cancelled bool
}

func (a *app) run(batches ...engine.Batch) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var trace progress.Sink = progress.Nop{}
	if a.cli.DebugLog != "" {
		f, err := os.Create(a.cli.DebugLog)
		if err != nil {
			return err
		}
		defer f.Close()
		trace = progress.NewTraceSink(f)
	}

	charts := &export.Writer{Encoding: a.cli.Export, Dir: a.cli.ChartDir}
	title := "Batch"
	if len(batches) > 0 {
		title = batches[0].Tool.String()
	}

	var (
		sum engine.Summary
		err error
	)
	if a.cli.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		sum, err = a.runPlain(ctx, progress.Tee(progress.NewWriterSink(a.stdout), trace), charts, batches)
	} else {
		sum, err = a.runInteractive(ctx, cancel, title, trace, charts, batches)
	}
	if err != nil {
		return err
	}

	a.failed = sum.Failed > 0
	a.cancelled = sum.Cancelled

	return nil
}

func (a *app) runPlain(ctx context.Context, sink progress.Sink, charts series.Consumer, batches []engine.Batch) (engine.Summary, error) {
	e, err := engine.New(a.cli.config(), sink, charts)
	if err != nil {
		return engine.Summary{}, err
	}

	sum, err := e.Run(ctx, batches...)
	if sum.Cancelled {
		fmt.Fprintln(a.stdout, "Cancelled.")
	}

	return sum, err
}

func (a *app) runInteractive(ctx context.Context, cancel func(), title string, trace progress.Sink, charts series.Consumer, batches []engine.Batch) (engine.Summary, error) {
	p := tea.NewProgram(ui.NewModel(title, cancel), tea.WithOutput(a.stdout))

	e, err := engine.New(a.cli.config(), progress.Tee(ui.NewProgramSink(p), trace), charts)
	if err != nil {
		return engine.Summary{}, err
	}

	go func() {
		sum, err := e.Run(ctx, batches...)
		p.Send(ui.DoneMsg{Summary: sum, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		return engine.Summary{}, fmt.Errorf("UI error: %w", err)
	}

	m, ok := final.(ui.Model)
	if !ok || !m.Done {
		return engine.Summary{Cancelled: true}, nil
	}

	return m.Result.Summary, m.Result.Err
}

func main() {
	var c CLI
	kctx := kong.Parse(&c,
		kong.Name("audiscope"),
		kong.Description("Audio quality analysis: loop variance, linear defects, gain and file splitting."),
		kong.UsageOnError(),
		vars(engine.DefaultConfig()),
		kong.Configuration(kong.JSON, "~/.config/audiscope.json"),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	a := &app{cli: &c, stdout: os.Stdout}
	if err := kctx.Run(a); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	switch {
	case a.cancelled:
		os.Exit(130)
	case a.failed:
		os.Exit(1)
	}
}
