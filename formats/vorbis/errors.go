// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	ErrNotOggVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis stream", audio.ErrUnsupportedFormat)
	ErrCompressed       = fmt.Errorf("%w: compressed Ogg Vorbis audio", audio.ErrUnsupportedFormat)
)
