// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audiscope/audio"
)

// Writer encodes signed integer PCM into a WAV container. Sizes in the
// header are fixed up by Close, so the destination must be seekable.
type Writer struct {
	enc    *wav.Encoder
	format audio.Format
	buf    *goaudio.IntBuffer
}

func NewWriter(w io.WriteSeeker, format audio.Format) (*Writer, error) {
	switch format.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedWavLayout, format.BitDepth)
	}

	return &Writer{
		enc:    wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, formatPCM),
		format: format,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// Write appends interleaved samples. len(samples) must be a multiple of
// the channel count.
func (w *Writer) Write(samples []int) error {
	if len(samples)%w.format.Channels != 0 {
		return fmt.Errorf("%w: %d values for %d channels", audio.ErrInvalidDstSize, len(samples), w.format.Channels)
	}
	if w.format.BitDepth == 8 {
		if cap(w.buf.Data) < len(samples) {
			w.buf.Data = make([]int, len(samples))
		}
		w.buf.Data = w.buf.Data[:len(samples)]
		for i, s := range samples {
			w.buf.Data[i] = s + 128
		}
	} else {
		w.buf.Data = samples
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return nil
}

// Close finalises the header sizes.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return nil
}

// WritePCM writes a complete WAV file holding interleaved samples.
func WritePCM(w io.WriteSeeker, format audio.Format, samples []int) error {
	wr, err := NewWriter(w, format)
	if err != nil {
		return err
	}
	if err := wr.Write(samples); err != nil {
		return err
	}

	return wr.Close()
}
