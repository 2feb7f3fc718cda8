// SPDX-License-Identifier: EPL-2.0

package series

import (
	"context"
	"path/filepath"
	"strings"
)

// Point is one value at an offset from the start of the recording.
type Point struct {
	Seconds float64 `json:"seconds"`
	Value   float64 `json:"value"`
}

// Series is a labelled line of a chart.
type Series struct {
	Label  string  `json:"label"`
	Color  Color   `json:"color"`
	Points []Point `json:"points"`
}

// Values returns the y values of s in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}

	return out
}

// Chart is everything a renderer needs to draw one output file. Series
// are ordered from the top layer down.
type Chart struct {
	Title      string     `json:"title"`
	XLabel     string     `json:"xLabel"`
	YLabel     string     `json:"yLabel"`
	Legend     bool       `json:"legend"`
	Series     []Series   `json:"series"`
	Name       string     `json:"name"`
	// Dir is where the rendered file belongs.
	Dir        string     `json:"dir"`
	Format     Format     `json:"format"`
	Resolution Resolution `json:"resolution"`
}

// FileName is Name with the extension of the chart's format.
func (c Chart) FileName() string {
	return c.Name + "." + c.Format.Extension()
}

// Path joins Dir and FileName.
func (c Chart) Path() string {
	return filepath.Join(c.Dir, c.FileName())
}

// Consumer receives finished charts, normally to render or store them.
type Consumer interface {
	Consume(ctx context.Context, chart Chart) error
}

// Locator is implemented by consumers that store a chart somewhere other
// than Chart.Path.
type Locator interface {
	Path(chart Chart) string
}

// Location is where consumer puts chart.
func Location(consumer Consumer, chart Chart) string {
	if l, ok := consumer.(Locator); ok {
		return l.Path(chart)
	}

	return chart.Path()
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(ctx context.Context, chart Chart) error

func (f ConsumerFunc) Consume(ctx context.Context, chart Chart) error { return f(ctx, chart) }

// Collector keeps every chart it receives. It is not safe for concurrent
// use.
type Collector struct {
	Charts []Chart
}

func (c *Collector) Consume(_ context.Context, chart Chart) error {
	c.Charts = append(c.Charts, chart)

	return nil
}

var unsafeName = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_", ".", "_",
)

// SanitiseName replaces characters that are not allowed in file names on
// common platforms, dots included, with underscores.
func SanitiseName(name string) string {
	return unsafeName.Replace(name)
}

// OutputName joins a tool prefix such as "[AS Loop]" and a source file
// name into a chart name.
func OutputName(prefix, fileName string) string {
	return prefix + " " + SanitiseName(fileName)
}
