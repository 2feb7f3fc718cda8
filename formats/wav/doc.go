// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes uncompressed integer PCM WAV files.
//
// Decoding and encoding go through github.com/go-audio/wav; chunk walking
// for header inspection uses github.com/go-audio/riff.
//
// # Supported Formats
//
//   - PCM and WAVE_FORMAT_EXTENSIBLE with 8, 16, 24 or 32 bits per sample
//   - Any channel count and sample rate
//
// 8-bit WAV data is unsigned on disk. The decoder re-centres it on zero and
// the writer shifts it back, so callers always see signed values.
//
// # Decoding
//
//	f, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	buf, err := audio.Read(ctx, src, audio.ReadOptions{})
//
// # Headers
//
// ReadHeader reports the format and where the sample data starts, for
// RIFF and RF64 files alike. PatchHeader rewrites a copied header for a new
// data length and turns RF64 markers back into plain RIFF, which is how
// parts of a file larger than 4 GiB are given valid headers.
//
// # Writing
//
//	f, _ := os.Create("out.wav")
//	err := wav.WritePCM(f, format, samples)
//
// Writer streams larger outputs in several Write calls.
package wav
