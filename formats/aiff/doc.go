// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes uncompressed AIFF files using
// github.com/go-audio/aiff.
//
// Samples are big-endian signed integers of 8, 16, 24 or 32 bits. The
// decoder limits itself to the SSND chunk so trailing chunks never leak into
// the audio:
//
//	f, _ := os.Open("take.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//
// ReadHeader reports where the sample data starts, which the splitter uses
// to cut a file into parts; Writer produces the parts.
package aiff
