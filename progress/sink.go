// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Sink receives status text. Append adds a permanent line. SetProgress
// replaces the single transient progress line; an empty string removes it.
// Clear wipes everything shown so far.
type Sink interface {
	Append(line string)
	SetProgress(line string)
	Clear()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Append(string)      {}
func (Nop) SetProgress(string) {}
func (Nop) Clear()             {}

// Buffer keeps lines in memory. Safe for concurrent use.
type Buffer struct {
	mtx      sync.Mutex
	lines    []string
	progress string
}

func (b *Buffer) Append(line string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.lines = append(b.lines, line)
}

func (b *Buffer) SetProgress(line string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.progress = line
}

func (b *Buffer) Clear() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.lines = nil
	b.progress = ""
}

// Lines returns a copy of the permanent lines.
func (b *Buffer) Lines() []string {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return append([]string(nil), b.lines...)
}

// Progress returns the current transient line.
func (b *Buffer) Progress() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.progress
}

// String renders the lines followed by the progress line, if any.
func (b *Buffer) String() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	out := strings.Join(b.lines, "\n")
	if b.progress != "" {
		if out != "" {
			out += "\n"
		}
		out += b.progress
	}

	return out
}

const eraseLine = "\r\033[K"

// WriterSink prints to a terminal, redrawing the progress line in place.
type WriterSink struct {
	mtx     sync.Mutex
	w       io.Writer
	pending bool
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Append(line string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.pending {
		fmt.Fprint(s.w, eraseLine)
		s.pending = false
	}
	fmt.Fprintln(s.w, line)
}

func (s *WriterSink) SetProgress(line string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	fmt.Fprint(s.w, eraseLine+line)
	s.pending = line != ""
}

func (s *WriterSink) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.pending {
		fmt.Fprint(s.w, eraseLine)
		s.pending = false
	}
}

// TraceSink writes every event with a timestamp, for debug logs.
type TraceSink struct {
	mtx sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewTraceSink(w io.Writer) *TraceSink {
	return &TraceSink{w: w, now: time.Now}
}

func (s *TraceSink) write(kind, line string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	fmt.Fprintf(s.w, "%s [%s] %s\n", s.now().Format(time.RFC3339Nano), kind, line)
}

func (s *TraceSink) Append(line string)      { s.write("LINE", line) }
func (s *TraceSink) SetProgress(line string) { s.write("PROGRESS", line) }
func (s *TraceSink) Clear()                  { s.write("CLEAR", "") }

type multiSink []Sink

// Tee fans every event out to all sinks in order.
func Tee(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Append(line string) {
	for _, s := range m {
		s.Append(line)
	}
}

func (m multiSink) SetProgress(line string) {
	for _, s := range m {
		s.SetProgress(line)
	}
}

func (m multiSink) Clear() {
	for _, s := range m {
		s.Clear()
	}
}
