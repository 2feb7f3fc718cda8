// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestReporter(sink Sink, interval time.Duration) (*Reporter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	r := NewReporter(sink, interval)
	r.now = clock.now
	r.Restart()

	return r, clock
}

func TestReporter_PercentThrottled(t *testing.T) {
	t.Parallel()

	buf := &Buffer{}
	r, clock := newTestReporter(buf, time.Second)

	if r.Percent(10, 100) {
		t.Error("Percent() emitted before the interval elapsed")
	}

	clock.t = clock.t.Add(time.Second)
	if !r.Percent(25, 100) {
		t.Fatal("Percent() did not emit after the interval")
	}
	if got := buf.Progress(); got != "    25%" {
		t.Errorf("Progress() = %q, want %q", got, "    25%")
	}

	clock.t = clock.t.Add(500 * time.Millisecond)
	if r.Percent(30, 100) {
		t.Error("Percent() emitted twice within one interval")
	}

	clock.t = clock.t.Add(600 * time.Millisecond)
	r.Percent(60, 100)
	if got := buf.Progress(); got != "    60%" {
		t.Errorf("Progress() = %q, want %q", got, "    60%")
	}
	if len(buf.Lines()) != 0 {
		t.Errorf("Lines() = %v, want none", buf.Lines())
	}
}

func TestReporter_PercentClamps(t *testing.T) {
	t.Parallel()

	buf := &Buffer{}
	r, clock := newTestReporter(buf, time.Millisecond)
	clock.t = clock.t.Add(time.Second)

	r.Percent(150, 100)
	if got := buf.Progress(); got != "    100%" {
		t.Errorf("Progress() = %q, want %q", got, "    100%")
	}
	if r.Percent(1, 0) {
		t.Error("Percent() with zero total emitted")
	}
}

func TestReporter_PrintfDropsProgress(t *testing.T) {
	t.Parallel()

	buf := &Buffer{}
	r, clock := newTestReporter(buf, time.Millisecond)
	clock.t = clock.t.Add(time.Second)

	r.Percent(50, 100)
	r.Printf("Loading file: %s", "a.wav")

	if buf.Progress() != "" {
		t.Errorf("Progress() = %q, want empty", buf.Progress())
	}
	if got := buf.Lines(); len(got) != 1 || got[0] != "Loading file: a.wav" {
		t.Errorf("Lines() = %v", got)
	}
}

func TestReporter_Clear(t *testing.T) {
	t.Parallel()

	buf := &Buffer{}
	r := NewReporter(buf, 0)
	r.Printf("one")
	r.Printf("two")
	r.Clear()

	if buf.String() != "" {
		t.Errorf("String() = %q after Clear, want empty", buf.String())
	}
}

func TestReporter_Nil(t *testing.T) {
	t.Parallel()

	var r *Reporter
	r.Printf("ignored")
	r.Restart()
	r.Clear()
	if r.Percent(1, 2) {
		t.Error("nil Reporter emitted progress")
	}
	if _, ok := r.Sink().(Nop); !ok {
		t.Error("nil Reporter Sink() is not Nop")
	}
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewWriterSink(&out)

	s.Append("first")
	s.SetProgress("    10%")
	s.Append("second")

	want := "first\n" + eraseLine + "    10%" + eraseLine + "second\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestTraceSink(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewTraceSink(&out)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	s.Append("hello")
	s.Clear()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out.String())
	}
	if lines[0] != "2026-01-02T03:04:05Z [LINE] hello" {
		t.Errorf("line 0 = %q", lines[0])
	}
}

func TestTee(t *testing.T) {
	t.Parallel()

	a, b := &Buffer{}, &Buffer{}
	s := Tee(a, b)
	s.Append("x")
	s.SetProgress("p")

	for i, buf := range []*Buffer{a, b} {
		if buf.String() != "x\np" {
			t.Errorf("sink %d String() = %q, want %q", i, buf.String(), "x\np")
		}
	}

	s.Clear()
	if a.String() != "" || b.String() != "" {
		t.Error("Clear() not forwarded")
	}
}
