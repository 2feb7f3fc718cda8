// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// DecodePCM converts raw interleaved PCM bytes into signed integers. Width
// is bytesPerSample (1 to 4). Unsigned data (8-bit WAV) is re-centred on
// zero. It returns the number of samples written; trailing bytes that do not
// form a whole sample are ignored.
func DecodePCM(raw []byte, bytesPerSample int, bigEndian, unsigned bool, dst []int) (int, error) {
	if bytesPerSample < 1 || bytesPerSample > 4 {
		return 0, fmt.Errorf("%w: %d bytes per sample", ErrUnsupportedFormat, bytesPerSample)
	}

	n := min(len(raw)/bytesPerSample, len(dst))
	for i := range n {
		b := raw[i*bytesPerSample : (i+1)*bytesPerSample]

		switch bytesPerSample {
		case 1:
			if unsigned {
				dst[i] = int(b[0]) - 128
			} else {
				dst[i] = int(int8(b[0]))
			}
		case 2:
			if bigEndian {
				dst[i] = int(int16(uint16(b[0])<<8 | uint16(b[1])))
			} else {
				dst[i] = int(int16(uint16(b[1])<<8 | uint16(b[0])))
			}
		case 3:
			if bigEndian {
				dst[i] = int(goaudio.Int24BETo32(b))
			} else {
				dst[i] = int(goaudio.Int24LETo32(b))
			}
		case 4:
			var u uint32
			if bigEndian {
				u = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
			} else {
				u = uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
			}
			dst[i] = int(int32(u))
		}
	}

	return n, nil
}

// FindMarker scans r for the four byte chunk ID and returns the offset of
// its first byte relative to where reading started. At most limit bytes are
// examined; limit <= 0 means no limit.
func FindMarker(r io.Reader, marker [4]byte, limit int64) (int64, error) {
	br := bufio.NewReader(r)

	var window [4]byte
	var pos int64
	for limit <= 0 || pos < limit {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}

		window[0], window[1], window[2], window[3] = window[1], window[2], window[3], c
		pos++
		if pos >= 4 && window == marker {
			return pos - 4, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrMarkerNotFound, marker[:])
}
