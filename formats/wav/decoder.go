// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audiscope/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// pcmReader is the part of wav.Decoder the source needs, to allow testing.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec       pcmReader
	format    audio.Format
	dataSize  int64
	remaining int64 // samples left in the data chunk
	intBuf    *goaudio.IntBuffer
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) DataSize() int64      { return s.dataSize }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	channels := s.format.Channels
	if len(dst)%channels != 0 {
		return 0, fmt.Errorf("%w: %d values for %d channels", audio.ErrInvalidDstSize, len(dst), channels)
	}
	if s.remaining <= 0 {
		return 0, io.EOF
	}

	want := int(min(int64(len(dst)), s.remaining))
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, want)}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	n -= n % channels
	if err != nil {
		return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	if n == 0 {
		// Data chunk shorter than declared.
		s.remaining = 0
		return 0, io.EOF
	}

	// go-audio returns 8-bit WAV samples unsigned.
	offset := 0
	if s.format.BitDepth == 8 {
		offset = 128
	}
	for i := range n {
		dst[i] = s.intBuf.Data[i] - offset
	}

	s.remaining -= int64(n)
	if s.remaining <= 0 {
		return n, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrOnlyIntegerPCM, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedWavLayout, dec.BitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDataChunk, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrNoDataChunk
	}

	format := audio.Format{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}

	bytesPerFrame := int64(format.FrameSize())
	frames := dec.PCMLen() / bytesPerFrame

	return &source{
		dec:       dec,
		format:    format,
		dataSize:  frames * bytesPerFrame,
		remaining: frames * int64(format.Channels),
	}, nil
}
