// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the minimum time between two percentage updates.
const DefaultInterval = 3 * time.Second

// PollMask is used by tight loops to check for cancellation every
// PollMask+1 iterations.
const PollMask = 4095

// Reporter throttles percentage updates and forwards status lines to a
// Sink. A nil *Reporter is valid and reports nothing.
type Reporter struct {
	mtx      sync.Mutex
	sink     Sink
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func NewReporter(sink Sink, interval time.Duration) *Reporter {
	if sink == nil {
		sink = Nop{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	r := &Reporter{sink: sink, interval: interval, now: time.Now}
	r.last = r.now()

	return r
}

// Sink returns the underlying sink.
func (r *Reporter) Sink() Sink {
	if r == nil {
		return Nop{}
	}

	return r.sink
}

// Printf appends a line and drops any pending progress line.
func (r *Reporter) Printf(format string, args ...any) {
	if r == nil {
		return
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.sink.SetProgress("")
	r.sink.Append(fmt.Sprintf(format, args...))
}

// Restart resets the throttle clock, normally at the start of a phase.
func (r *Reporter) Restart() {
	if r == nil {
		return
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.last = r.now()
}

// Percent shows done/total as a percentage once the interval has elapsed
// since the last update. It reports whether a line was emitted.
func (r *Reporter) Percent(done, total int64) bool {
	if r == nil || total <= 0 {
		return false
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := r.now()
	if now.Sub(r.last) < r.interval {
		return false
	}
	r.last = now

	pct := done * 100 / total
	pct = max(0, min(pct, 100))
	r.sink.SetProgress(fmt.Sprintf("    %d%%", pct))

	return true
}

// Clear wipes the sink, used when a run is cancelled.
func (r *Reporter) Clear() {
	if r == nil {
		return
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.sink.Clear()
}
