// SPDX-License-Identifier: EPL-2.0

// Package engine runs the audiscope tools over batches of files.
//
// A Batch names the tool, its parameters and the input files. Engine.Run
// processes batches strictly in order, one file at a time, and reports
// through a progress.Sink:
//
//	e, err := engine.New(engine.DefaultConfig(), sink, consumer)
//	if err != nil {
//	    return err
//	}
//	sum, err := e.Run(ctx, batch)
//
// The loop, linear and gain tools hand their results to a series.Consumer
// as charts; the split tool writes numbered parts next to the source or in
// the batch's output directory.
//
// A failure on one file is logged as an "Error: ..." line and the batch
// moves on to the next file. Invalid batch parameters abort the run.
// Cancelling ctx stops the run at the next poll point, removes the partial
// output of the current file and clears the sink; Run then reports
// Summary.Cancelled instead of an error.
package engine
