// SPDX-License-Identifier: EPL-2.0

// Package export stores charts as data files next to where the rendered
// image would go, so an external plotter can draw them.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ik5/audiscope/series"
)

var ErrUnknownEncoding = errors.New("unknown export encoding")

// Encoding is the data file layout.
type Encoding int

const (
	// JSON writes the whole chart, indented.
	JSON Encoding = iota
	// CSV writes one row per point: series label, seconds, value.
	CSV
)

func (e Encoding) Extension() string {
	if e == CSV {
		return "csv"
	}

	return "json"
}

func (e Encoding) String() string { return strings.ToUpper(e.Extension()) }

func (e *Encoding) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "json":
		*e = JSON
	case "csv":
		*e = CSV
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, text)
	}

	return nil
}

// Writer is a series.Consumer that writes every chart to
// <chart dir>/<chart name>.<ext>. When Dir is set it overrides the chart's
// own directory.
type Writer struct {
	Encoding Encoding
	Dir      string
	// Written lists the files created so far.
	Written []string
}

var _ series.Locator = (*Writer)(nil)

func (w *Writer) Path(c series.Chart) string {
	dir := c.Dir
	if w.Dir != "" {
		dir = w.Dir
	}

	return filepath.Join(dir, c.Name+"."+w.Encoding.Extension())
}

func (w *Writer) Consume(ctx context.Context, c series.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var data []byte
	var err error
	switch w.Encoding {
	case JSON:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case CSV:
		data, err = encodeCSV(c)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownEncoding, int(w.Encoding))
	}
	if err != nil {
		return err
	}

	path := w.Path(c)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	w.Written = append(w.Written, path)

	return nil
}

func encodeCSV(c series.Chart) ([]byte, error) {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)

	if err := cw.Write([]string{"series", c.XLabel, c.YLabel}); err != nil {
		return nil, err
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			row := []string{
				s.Label,
				strconv.FormatFloat(p.Seconds, 'g', -1, 64),
				strconv.FormatFloat(p.Value, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return nil, err
			}
		}
	}
	cw.Flush()

	return []byte(sb.String()), cw.Error()
}
