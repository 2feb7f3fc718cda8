// SPDX-License-Identifier: EPL-2.0

// Package progress carries status text and throttled percentage updates
// from long running analysis to whatever displays them.
//
// A Sink shows permanent lines plus one transient progress line. The
// Reporter wraps a Sink and limits percentage updates to one per interval:
//
//	rep := progress.NewReporter(progress.NewWriterSink(os.Stdout), 3*time.Second)
//	rep.Printf("Analysing file: %s", name)
//	for i := range n {
//	    rep.Percent(int64(i), int64(n))
//	}
//
// Cancellation is a context.Context; tight loops poll ctx.Err() every
// PollMask+1 iterations.
package progress
