// SPDX-License-Identifier: EPL-2.0

// Package split cuts AIFF, AU and WAV files into numbered parts without
// touching the audio data.
//
// A Plan places the cuts at multiples of the size limit from the start of
// the file, moved down to whole frames. File copies the source, then
// writes parts from the last to the first, truncating the copy after each
// one so that disk use stays near twice the source size:
//
//	paths, err := split.File(ctx, "long take.wav", split.Options{
//		Limit: split.Limit{Bytes: split.SizeLimit(2)},
//	})
//	// long take (1).wav, long take (2).wav, ...
//
// WAV files larger than the patch threshold and all AU files keep a copy
// of their original header with the size fields rewritten (an RF64 source
// becomes plain RIFF). Other parts are written by the go-audio encoders.
package split
