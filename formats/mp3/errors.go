// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	ErrNotMP3File = fmt.Errorf("%w: not an MP3 stream", audio.ErrUnsupportedFormat)
	// ErrCompressed is returned for every valid MP3 stream; only
	// uncompressed PCM is analysed.
	ErrCompressed = fmt.Errorf("%w: compressed MP3 audio", audio.ErrUnsupportedFormat)
)
