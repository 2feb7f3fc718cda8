// SPDX-License-Identifier: EPL-2.0

package series

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrUnknownResolution = errors.New("unknown output resolution")
)

// Color is the intended colour of a line as #rrggbb.
type Color string

const (
	Black   Color = "#000000"
	Blue    Color = "#0000ff"
	Red     Color = "#ff0000"
	Yellow  Color = "#ffff00"
	Magenta Color = "#ff3fff"
	Teal    Color = "#007f7f"
)

// Format is the image format a chart should be rendered to.
type Format int

const (
	PDF Format = iota
	JPG
	PNG
	SVG
)

var formatNames = [...]string{PDF: "PDF", JPG: "JPG", PNG: "PNG", SVG: "SVG"}

func (f Format) String() string {
	if f < PDF || f > SVG {
		return fmt.Sprintf("Format(%d)", int(f))
	}

	return formatNames[f]
}

// Extension is the lower case file extension without the dot.
func (f Format) Extension() string {
	return strings.ToLower(f.String())
}

func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), ".")
	if s == "JPEG" {
		return JPG, nil
	}
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) MarshalText() ([]byte, error) {
	if f < PDF || f > SVG {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v

	return nil
}

// Resolution is the pixel size of a rendered chart.
type Resolution struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var (
	HD  = Resolution{Name: "HD", Width: 1280, Height: 720}
	FHD = Resolution{Name: "FHD", Width: 1920, Height: 1080}
	QHD = Resolution{Name: "QHD", Width: 2560, Height: 1440}
	UHD = Resolution{Name: "UHD", Width: 3840, Height: 2160}
)

// Resolutions lists the supported resolutions from smallest to largest.
func Resolutions() []Resolution { return []Resolution{HD, FHD, QHD, UHD} }

func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d)", r.Name, r.Width, r.Height)
}

// ParseResolution accepts a name ("hd", "fhd", "qhd", "uhd") or a line
// count such as "1080p".
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, r := range Resolutions() {
		if s == r.Name || s == fmt.Sprintf("%dP", r.Height) {
			return r, nil
		}
	}

	return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownResolution, s)
}

func (r *Resolution) UnmarshalText(text []byte) error {
	v, err := ParseResolution(string(text))
	if err != nil {
		return err
	}
	*r = v

	return nil
}
