// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", audio.ErrUnsupportedFormat)
	ErrUnsupportedWavLayout = fmt.Errorf("%w: unsupported WAV layout", audio.ErrUnsupportedFormat)
	ErrOnlyIntegerPCM       = fmt.Errorf("%w: only integer PCM WAV supported", audio.ErrUnsupportedFormat)
	ErrNoDataChunk          = fmt.Errorf("%w: WAV data chunk not found", audio.ErrUnsupportedFormat)
	ErrHeaderTooShort       = errors.New("WAV header too short")
)
