// SPDX-License-Identifier: EPL-2.0

package ui

import tea "github.com/charmbracelet/bubbletea"

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards engine output to a running program.
type ProgramSink struct {
	p Sender
}

func NewProgramSink(p Sender) *ProgramSink {
	return &ProgramSink{p: p}
}

func (s *ProgramSink) Append(line string)      { s.p.Send(LineMsg(line)) }
func (s *ProgramSink) SetProgress(line string) { s.p.Send(ProgressMsg(line)) }
func (s *ProgramSink) Clear()                  { s.p.Send(ClearMsg{}) }
