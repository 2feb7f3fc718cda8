// SPDX-License-Identifier: EPL-2.0

package split

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/formats/aiff"
	"github.com/ik5/audiscope/formats/au"
	"github.com/ik5/audiscope/formats/wav"
)

// partFunc writes the audio bytes [start, end) of src as a complete file.
type partFunc func(dst *os.File, src io.ReaderAt, start, end int64) error

type sampleWriter interface {
	Write(samples []int) error
	Close() error
}

// partWriter picks how parts of this source are written. AU parts and the
// parts of WAV files above the patch threshold reuse the source header
// with corrected sizes; everything else goes through an encoder.
func (s *splitter) partWriter(src io.ReaderAt, l layout, size int64) (partFunc, error) {
	switch {
	case l.container == containerAU:
		header, err := readHeaderBytes(src, l.dataStart)
		if err != nil {
			return nil, err
		}
		return s.patched(header, au.PatchHeader), nil

	case l.container == containerWAV && size > s.opts.PatchThreshold:
		end, err := wavHeaderEnd(src, l.dataStart)
		if err != nil {
			return nil, err
		}
		header, err := readHeaderBytes(src, end)
		if err != nil {
			return nil, err
		}
		return s.patched(header, wav.PatchHeader), nil

	case l.container == containerWAV:
		return s.encoded(l, func(w io.WriteSeeker) (sampleWriter, error) {
			return wav.NewWriter(w, l.format)
		}), nil

	case l.container == containerAIFF:
		return s.encoded(l, func(w io.WriteSeeker) (sampleWriter, error) {
			return aiff.NewWriter(w, l.format)
		}), nil
	}

	return nil, ErrUnsupportedSplit
}

func readHeaderBytes(src io.ReaderAt, n int64) ([]byte, error) {
	header := make([]byte, n)
	if _, err := src.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return header, nil
}

// patched writes a copy of header with its sizes rewritten, followed by
// the raw audio bytes.
func (s *splitter) patched(header []byte, patch func([]byte, uint32) ([]byte, error)) partFunc {
	return func(dst *os.File, src io.ReaderAt, start, end int64) error {
		n := end - start
		if n > math.MaxUint32 {
			return fmt.Errorf("%w: %d bytes", ErrPartTooLarge, n)
		}

		h, err := patch(header, uint32(n))
		if err != nil {
			return err
		}
		if _, err := dst.Write(h); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}

		return s.copyRange(dst, src, start, end)
	}
}

// encoded decodes the audio bytes and re-encodes them with a fresh header.
func (s *splitter) encoded(l layout, newWriter func(io.WriteSeeker) (sampleWriter, error)) partFunc {
	width := l.format.BytesPerSample()
	frame := l.format.FrameSize()

	return func(dst *os.File, src io.ReaderAt, start, end int64) error {
		w, err := newWriter(dst)
		if err != nil {
			return err
		}

		chunk := int64(len(s.buf) / frame * frame)
		samples := make([]int, chunk/int64(width))

		for pos := start; pos < end; {
			if err := s.ctx.Err(); err != nil {
				return err
			}

			n := min(chunk, end-pos)
			if _, err := src.ReadAt(s.buf[:n], pos); err != nil {
				return fmt.Errorf("%w: %w", audio.ErrIO, err)
			}
			m, err := audio.DecodePCM(s.buf[:n], width, l.format.BigEndian, l.unsigned, samples)
			if err != nil {
				return err
			}
			if err := w.Write(samples[:m]); err != nil {
				return err
			}

			pos += n
			s.opts.Reporter.Percent(pos-start, end-start)
		}

		return w.Close()
	}
}
