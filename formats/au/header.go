// SPDX-License-Identifier: EPL-2.0

package au

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audiscope/audio"
)

const (
	headerSize  = 24
	unknownSize = 0xFFFFFFFF
)

var magic = []byte(".snd")

// Linear PCM encodings; every other encoding is compressed or float.
const (
	EncodingLinear8  = 2
	EncodingLinear16 = 3
	EncodingLinear24 = 4
	EncodingLinear32 = 5
)

// Header is the fixed part of a Sun/NeXT audio file.
type Header struct {
	Format   audio.Format
	Encoding uint32
	// DataOffset is the file offset of the first sample byte.
	DataOffset int64
	// DataSize is the declared data length, or -1 when the file says it is
	// unknown.
	DataSize int64
}

// ParseHeader decodes the first 24 bytes of an AU file.
func ParseHeader(b []byte) (Header, error) {
	var h Header

	if len(b) < headerSize {
		return h, fmt.Errorf("%w: %d byte header", ErrNotAuFile, len(b))
	}
	if !bytes.Equal(b[:4], magic) {
		return h, ErrNotAuFile
	}

	offset := binary.BigEndian.Uint32(b[4:8])
	size := binary.BigEndian.Uint32(b[8:12])
	h.Encoding = binary.BigEndian.Uint32(b[12:16])
	rate := binary.BigEndian.Uint32(b[16:20])
	channels := binary.BigEndian.Uint32(b[20:24])

	if offset < headerSize {
		return h, fmt.Errorf("%w: data offset %d", ErrNotAuFile, offset)
	}
	if channels < 1 || channels > audio.MaxChannels {
		return h, fmt.Errorf("%w: %d channels", ErrNotAuFile, channels)
	}
	if h.Encoding < EncodingLinear8 || h.Encoding > EncodingLinear32 {
		return h, fmt.Errorf("%w: encoding %d", ErrUnsupportedEncoding, h.Encoding)
	}

	h.Format = audio.Format{
		SampleRate: int(rate),
		BitDepth:   8 * int(h.Encoding-1),
		Channels:   int(channels),
		BigEndian:  true,
	}
	h.DataOffset = int64(offset)
	h.DataSize = int64(size)
	if size == unknownSize {
		h.DataSize = -1
	}

	return h, nil
}

// ReadHeader reads and parses the fixed header and leaves r positioned
// just after it.
func ReadHeader(r io.Reader) (Header, error) {
	b := make([]byte, headerSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrNotAuFile, err)
	}

	return ParseHeader(b)
}

// PatchHeader returns a copy of header with its data size set to dataLen.
func PatchHeader(header []byte, dataLen uint32) ([]byte, error) {
	if _, err := ParseHeader(header); err != nil {
		return nil, err
	}

	out := bytes.Clone(header)
	binary.BigEndian.PutUint32(out[8:12], dataLen)

	return out, nil
}
