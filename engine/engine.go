// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audiscope"
	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/progress"
	"github.com/ik5/audiscope/series"
)

// Separator closes every run and every batch of a multi-batch run.
const Separator = "----------------------------------------"

// Engine runs batches with one configuration. It is not safe for
// concurrent use; runs are meant to happen one after another.
type Engine struct {
	cfg      Config
	sink     progress.Sink
	consumer series.Consumer
	registry *audio.Registry
}

// Summary describes a finished run.
type Summary struct {
	// Files counts inputs processed without error.
	Files int
	// Failed counts inputs skipped because of an error.
	Failed int
	// Outputs lists where the consumer stored each chart, and the split
	// parts, in creation order.
	Outputs []string
	// Cancelled is set when the context ended the run early.
	Cancelled bool
}

// New validates cfg. A nil sink discards status lines and a nil consumer
// discards charts.
func New(cfg Config, sink progress.Sink, consumer series.Consumer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = progress.Nop{}
	}
	if consumer == nil {
		consumer = series.ConsumerFunc(func(context.Context, series.Chart) error { return nil })
	}

	return &Engine{
		cfg:      cfg,
		sink:     sink,
		consumer: consumer,
		registry: audiscope.DefaultRegistry,
	}, nil
}

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Run processes batches in order. Every batch must use the same tool. The
// returned error is the one that aborted the run; per-file errors are only
// logged and counted. A cancelled run returns a nil error with
// Summary.Cancelled set.
func (e *Engine) Run(ctx context.Context, batches ...Batch) (Summary, error) {
	var sum Summary
	rep := progress.NewReporter(e.sink, e.cfg.ProgressInterval)

	tool := ToolLoop
	graph := false
	if len(batches) > 0 {
		tool, graph = batches[0].Tool, batches[0].GenerateGraph
	}

	err := e.run(ctx, rep, &sum, batches)
	if ctx.Err() != nil {
		rep.Clear()
		sum.Cancelled = true
		return sum, nil
	}
	if err != nil {
		rep.Printf("Error: %v", err)
	}

	rep.Printf("%s", doneLine(tool, graph))
	rep.Printf(Separator)

	return sum, err
}

func (e *Engine) run(ctx context.Context, rep *progress.Reporter, sum *Summary, batches []Batch) error {
	if len(batches) == 0 {
		return fmt.Errorf("%w: no batches", ErrInvalidParameter)
	}
	for i, b := range batches {
		if b.Tool != batches[0].Tool {
			return fmt.Errorf("%w: batch %d uses %v, batch 1 uses %v", ErrInvalidParameter, i+1, b.Tool, batches[0].Tool)
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("batch %d: %w", i+1, err)
		}
	}

	for i, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		b = b.withDefaults()
		var err error
		switch b.Tool {
		case ToolLoop:
			err = e.loopScan(ctx, rep, sum, b)
		case ToolLinear:
			err = e.linearScan(ctx, rep, sum, b)
		case ToolSplit:
			err = e.splitFiles(ctx, rep, sum, b)
		case ToolGain:
			err = e.analyseGain(ctx, rep, sum, b)
		}
		if err != nil {
			return err
		}

		if len(batches) > 1 {
			rep.Printf("--- Batch %d/%d completed ---", i+1, len(batches))
			rep.Printf(Separator)
		}
	}

	return nil
}

func doneLine(t Tool, graph bool) string {
	switch t {
	case ToolLoop:
		return "All done! Check 'AS Loop' files for analysis results."
	case ToolLinear:
		return "All done! Check 'AS Linear' files for analysis results."
	case ToolSplit:
		return "All done! Output files end with (1), (2), etc."
	case ToolGain:
		if graph {
			return "All done! Check 'AS Gain' files for analysis results."
		}
	}

	return "All done!"
}

// eachFile calls fn for every file. A failed file is logged and counted;
// only cancellation stops the loop.
func (e *Engine) eachFile(ctx context.Context, rep *progress.Reporter, sum *Summary, files []string, fn func(path string) error) error {
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(path)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			sum.Failed++
			rep.Printf("Error: %v", err)
		default:
			sum.Files++
		}
	}

	return nil
}

// checkSize rejects files larger than limit.
func checkSize(path string, limit int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, filepath.Base(path), info.Size(), limit)
	}

	return nil
}

func (e *Engine) load(ctx context.Context, rep *progress.Reporter, path string, limit int64) (*audio.Buffer, error) {
	if err := checkSize(path, limit); err != nil {
		return nil, err
	}

	return audiscope.LoadWith(ctx, e.registry, path, e.cfg.readOptions(rep))
}

// emit hands a chart to the consumer and records its path.
func (e *Engine) emit(ctx context.Context, sum *Summary, c series.Chart) error {
	if err := e.consumer.Consume(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", c.FileName(), err)
	}
	sum.Outputs = append(sum.Outputs, series.Location(e.consumer, c))

	return nil
}

func (e *Engine) chart(path, dir, prefix, yLabel string, s []series.Series) series.Chart {
	name := filepath.Base(path)

	return series.Chart{
		Title:      "Audiscope Output\n" + name,
		XLabel:     "Time",
		YLabel:     yLabel,
		Series:     s,
		Name:       series.OutputName(prefix, name),
		Dir:        dir,
		Format:     e.cfg.OutputFormat,
		Resolution: e.cfg.Resolution,
	}
}
