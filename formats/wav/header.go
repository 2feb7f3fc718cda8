// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"github.com/ik5/audiscope/audio"
)

var (
	rf64ID = [4]byte{'R', 'F', '6', '4'}
	ds64ID = [4]byte{'d', 's', '6', '4'}
	junkID = [4]byte{'J', 'U', 'N', 'K'}
)

// Header locates the sample data inside a WAV (or RF64) container.
type Header struct {
	Format      audio.Format
	AudioFormat uint16
	// DataOffset is the file offset of the first sample byte.
	DataOffset int64
	// DataSize is the declared size of the data chunk. For RF64 files it
	// comes from the ds64 chunk.
	DataSize int64
	// RF64 is set for RF64 containers, whose sizes are 64 bits wide.
	RF64 bool
}

// ReadHeader walks the chunk list up to the data chunk. r is left
// positioned at DataOffset.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	var h Header

	p := riff.New(r)
	id, _, err := p.IDnSize()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if id != riff.RiffID && id != rf64ID {
		return h, fmt.Errorf("%w: container %q", ErrNotWavFile, id[:])
	}
	p.ID = id

	if err := binary.Read(r, binary.BigEndian, &p.Format); err != nil {
		return h, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return h, fmt.Errorf("%w: form %q", ErrNotWavFile, p.Format[:])
	}

	var gotFmt bool
	var ds64Size int64 = -1
	for {
		chunk, err := p.NextChunk()
		if err != nil {
			return h, fmt.Errorf("%w: %w", ErrNoDataChunk, err)
		}
		start, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return h, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}

		switch chunk.ID {
		case riff.FmtID:
			if err := chunk.DecodeWavHeader(p); err != nil {
				return h, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
			}
			gotFmt = true
		case ds64ID:
			var sizes struct {
				RiffSize, DataSize, SampleCount uint64
			}
			if err := binary.Read(r, binary.LittleEndian, &sizes); err != nil {
				return h, fmt.Errorf("%w: ds64: %w", ErrUnsupportedWavLayout, err)
			}
			ds64Size = int64(sizes.DataSize)
		case riff.DataFormatID:
			if !gotFmt {
				return h, fmt.Errorf("%w: data before fmt", ErrUnsupportedWavLayout)
			}
			h.Format = audio.Format{
				SampleRate: int(p.SampleRate),
				BitDepth:   int(p.BitsPerSample),
				Channels:   int(p.NumChannels),
			}
			h.AudioFormat = p.WavAudioFormat
			h.DataOffset = start
			h.DataSize = int64(chunk.Size)
			h.RF64 = id == rf64ID
			if h.RF64 && ds64Size >= 0 {
				h.DataSize = ds64Size
			}
			return h, nil
		}

		if _, err := r.Seek(start+int64(chunk.Size), io.SeekStart); err != nil {
			return h, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
	}
}

// PatchHeader returns a copy of a header (every byte before the first
// sample) rewritten for a file holding dataLen bytes of audio. RF64 markers
// are turned back into plain RIFF: the container ID becomes "RIFF" and any
// ds64 chunk becomes JUNK.
func PatchHeader(header []byte, dataLen uint32) ([]byte, error) {
	if len(header) < 20 {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(header))
	}
	if !bytes.Equal(header[len(header)-8:len(header)-4], riff.DataFormatID[:]) {
		return nil, fmt.Errorf("%w: header does not end at the data chunk", ErrUnsupportedWavLayout)
	}

	out := bytes.Clone(header)
	if bytes.Equal(out[:4], rf64ID[:]) {
		copy(out[:4], riff.RiffID[:])
	}

	dataChunk := len(out) - 8
	for pos := 12; pos+8 <= dataChunk; {
		if bytes.Equal(out[pos:pos+4], ds64ID[:]) {
			copy(out[pos:pos+4], junkID[:])
		}
		size := int(binary.LittleEndian.Uint32(out[pos+4 : pos+8]))
		pos += 8 + size + size%2
	}

	riffSize := uint64(len(out)) - 8 + uint64(dataLen)
	if riffSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes of audio do not fit a RIFF container", ErrUnsupportedWavLayout, dataLen)
	}
	binary.LittleEndian.PutUint32(out[4:8], uint32(riffSize))
	binary.LittleEndian.PutUint32(out[len(out)-4:], dataLen)

	return out, nil
}
