// SPDX-License-Identifier: EPL-2.0

package split

import (
	"errors"
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	ErrInvalidLimit     = errors.New("split limit must be positive")
	ErrUnsupportedSplit = fmt.Errorf("%w: cannot split this container", audio.ErrUnsupportedFormat)
	ErrPartTooLarge     = errors.New("part does not fit a 32-bit container")
	ErrNothingToSplit   = errors.New("file holds no audio data")
)
