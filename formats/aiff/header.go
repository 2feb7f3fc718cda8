// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audiscope/audio"
)

var ssndID = [4]byte{'S', 'S', 'N', 'D'}

// Header locates the sample data inside an AIFF container.
type Header struct {
	Format audio.Format
	// DataOffset is the file offset of the first sample byte.
	DataOffset int64
	// DataSize is the number of sample bytes in the SSND chunk.
	DataSize int64
}

// ReadHeader validates the container with the go-audio decoder and finds
// the SSND chunk. r is left positioned at DataOffset.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	var h Header

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return h, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return h, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return h, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return h, ErrUnsupportedAiffLayout
	}
	h.Format = audio.Format{
		SampleRate: format.SampleRate,
		BitDepth:   int(dec.BitDepth),
		Channels:   format.NumChannels,
		BigEndian:  true,
	}

	marker, err := findSSND(r)
	if err != nil {
		return h, err
	}
	if _, err := r.Seek(marker+4, io.SeekStart); err != nil {
		return h, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	var ssnd struct {
		Size      uint32
		Offset    uint32
		BlockSize uint32
	}
	if err := binary.Read(r, binary.BigEndian, &ssnd); err != nil {
		return h, fmt.Errorf("%w: SSND: %w", ErrUnsupportedAiffLayout, err)
	}
	if ssnd.Size < 8+ssnd.Offset {
		return h, fmt.Errorf("%w: SSND size %d", ErrUnsupportedAiffLayout, ssnd.Size)
	}

	h.DataOffset = marker + 16 + int64(ssnd.Offset)
	h.DataSize = int64(ssnd.Size - 8 - ssnd.Offset)

	if _, err := r.Seek(h.DataOffset, io.SeekStart); err != nil {
		return h, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return h, nil
}

// findSSND walks the chunk list after the FORM header and returns the
// offset of the SSND chunk ID. Chunk bodies are padded to an even length.
func findSSND(r io.ReadSeeker) (int64, error) {
	pos := int64(12)
	for {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}

		var chunk struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(r, binary.BigEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, fmt.Errorf("%w: no SSND chunk", ErrUnsupportedAiffLayout)
			}
			return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
		if chunk.ID == ssndID {
			return pos, nil
		}

		pos += 8 + int64(chunk.Size) + int64(chunk.Size&1)
	}
}
