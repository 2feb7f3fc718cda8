// SPDX-License-Identifier: EPL-2.0

// Package vorbis identifies Ogg Vorbis files.
//
// Like MP3, Vorbis is lossy and is not analysed. Decoder reads the stream
// headers with github.com/jfreymuth/oggvorbis and fails with either
// ErrNotOggVorbisFile or ErrCompressed, which carries the sample rate,
// channel count and duration. Both wrap audio.ErrUnsupportedFormat.
package vorbis
