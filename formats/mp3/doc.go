// SPDX-License-Identifier: EPL-2.0

// Package mp3 identifies MP3 files.
//
// MP3 is lossy, so its samples say nothing about the quality of the
// original recording. Decoder parses the stream with
// github.com/hajimehoshi/go-mp3 and always fails: ErrNotMP3File when the
// data is not MP3, ErrCompressed (with the sample rate and duration) when
// it is. Both wrap audio.ErrUnsupportedFormat.
package mp3
