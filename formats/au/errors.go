// SPDX-License-Identifier: EPL-2.0

package au

import (
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	ErrNotAuFile           = fmt.Errorf("%w: not an AU file", audio.ErrUnsupportedFormat)
	ErrUnsupportedEncoding = fmt.Errorf("%w: only linear PCM AU supported", audio.ErrUnsupportedFormat)
)
