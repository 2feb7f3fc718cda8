// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audiscope/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec       aiffReader
	format    audio.Format
	dataSize  int64
	remaining int64 // samples left in the SSND chunk
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
	copy(dst, s.intBuf.Data[:n])
	s.remaining -= int64(n)

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	case n == 0, err != nil:
		s.remaining = 0
		return n, io.EOF
	case s.remaining <= 0:
		return n, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	// A fresh decoder: ReadHeader moved the reader around.
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	dec := aiff.NewDecoder(r)
	dec.ReadInfo()

	bytesPerFrame := int64(h.Format.FrameSize())
	frames := h.DataSize / bytesPerFrame

	return &source{
		dec:       dec,
		format:    h.Format,
		dataSize:  frames * bytesPerFrame,
		remaining: frames * int64(h.Format.Channels),
	}, nil
}
