// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audiscope/audio"
)

// Writer encodes signed integer PCM into an AIFF container through the
// go-audio encoder.
type Writer struct {
	enc    *aiff.Encoder
	format audio.Format
	buf    *goaudio.IntBuffer
}

func NewWriter(w io.WriteSeeker, format audio.Format) (*Writer, error) {
	switch format.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, format.BitDepth)
	}

	return &Writer{
		enc:    aiff.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels),
		format: format,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// Write appends interleaved samples.
func (w *Writer) Write(samples []int) error {
	if len(samples)%w.format.Channels != 0 {
		return fmt.Errorf("%w: %d values for %d channels", audio.ErrInvalidDstSize, len(samples), w.format.Channels)
	}

	w.buf.Data = samples
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return nil
}

// Close writes the final chunk sizes.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return nil
}
