// SPDX-License-Identifier: EPL-2.0

package ui

import "github.com/ik5/audiscope/engine"

// LineMsg is a permanent log line.
type LineMsg string

// ProgressMsg replaces the transient progress line. Empty removes it.
type ProgressMsg string

// ClearMsg wipes the log, sent when a run is cancelled.
type ClearMsg struct{}

// DoneMsg ends the program once the engine returns.
type DoneMsg struct {
	Summary engine.Summary
	Err     error
}
