// SPDX-License-Identifier: EPL-2.0

package au

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiscope/audio"
)

type source struct {
	r        io.Reader
	format   audio.Format
	dataSize int64
	buf      []byte
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) DataSize() int64      { return s.dataSize }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	channels := s.format.Channels
	if len(dst)%channels != 0 {
		return 0, fmt.Errorf("%w: %d values for %d channels", audio.ErrInvalidDstSize, len(dst), channels)
	}

	width := s.format.BytesPerSample()
	need := len(dst) * width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	m, err := io.ReadFull(s.r, s.buf)
	eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
	if err != nil && !eof {
		return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	frameSize := s.format.FrameSize()
	m -= m % frameSize
	n, err := audio.DecodePCM(s.buf[:m], width, true, false, dst)
	if err != nil {
		return 0, err
	}

	if eof {
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

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	if _, err := r.Seek(h.DataOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	size := max(0, end-h.DataOffset)
	if h.DataSize >= 0 {
		size = min(size, h.DataSize)
	}
	frameSize := int64(h.Format.FrameSize())
	size -= size % frameSize

	return &source{
		r:        io.LimitReader(r, size),
		format:   h.Format,
		dataSize: size,
	}, nil
}
