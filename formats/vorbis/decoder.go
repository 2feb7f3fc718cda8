// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audiscope/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggInfo is the part of oggvorbis.Reader the decoder reports on.
type oggInfo interface {
	SampleRate() int
	Channels() int
	Length() int64
}

func describe(info oggInfo) error {
	rate := info.SampleRate()
	if rate <= 0 || info.Length() == 0 {
		return fmt.Errorf("%w: %d Hz, %d ch, unknown length", ErrCompressed, rate, info.Channels())
	}

	seconds := float64(info.Length()) / float64(rate)

	return fmt.Errorf("%w: %d Hz, %d ch, %.1f s", ErrCompressed, rate, info.Channels(), seconds)
}

// Decoder recognises Ogg Vorbis streams so they can be rejected with a
// useful message. It never returns a Source.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbisFile, err)
	}

	return nil, describe(dec)
}
