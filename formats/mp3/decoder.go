// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audiscope/audio"
)

// go-mp3 always decodes to 16-bit stereo.
const decodedFrameSize = 4

// mp3Info is the part of gomp3.Decoder the decoder reports on.
type mp3Info interface {
	SampleRate() int
	Length() int64
}

func describe(info mp3Info) error {
	rate := info.SampleRate()
	if rate <= 0 || info.Length() < 0 {
		return fmt.Errorf("%w: %d Hz, unknown length", ErrCompressed, rate)
	}

	seconds := float64(info.Length()/decodedFrameSize) / float64(rate)

	return fmt.Errorf("%w: %d Hz, %.1f s", ErrCompressed, rate, seconds)
}

// Decoder recognises MP3 streams so they can be rejected with a useful
// message. It never returns a Source.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return nil, describe(dec)
}
