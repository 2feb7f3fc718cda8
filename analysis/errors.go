// SPDX-License-Identifier: EPL-2.0

package analysis

import "errors"

var (
	ErrNoLoopFound      = errors.New("unable to calculate length of audio loop")
	ErrInvalidWindow    = errors.New("window must be at least one frame")
	ErrInvalidBitDepth  = errors.New("bit depth must be between 2 and 32")
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
)
