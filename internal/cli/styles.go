// SPDX-License-Identifier: EPL-2.0

// Package cli holds the console styling shared by the audiscope command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colour palette
var (
	PrimaryColor = lipgloss.Color("#1E90FF")
	AccentColor  = lipgloss.Color("#FFA500")
	ErrorColor   = lipgloss.Color("#A40000")
	MutedColor   = lipgloss.Color("#888888")
	TextColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(AccentColor)
)

// StyleLine colours one log line by what it reports.
func StyleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "Error:"):
		return ErrorStyle.Render("Error:") + line[len("Error:"):]
	case strings.HasPrefix(line, "All done!"), strings.HasPrefix(line, "--- Batch"):
		return TitleStyle.UnsetMarginBottom().Render(line)
	case strings.HasPrefix(line, "File Peak:"), strings.HasPrefix(line, "File RMS:"):
		k, v, _ := strings.Cut(line, ":")
		return KeyStyle.Render(k+":") + ValueStyle.Render(v)
	case strings.HasPrefix(line, "----"):
		return KeyStyle.Render(line)
	}

	return line
}

func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("Audiscope"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
