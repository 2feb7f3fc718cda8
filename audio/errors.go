// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrIO                = errors.New("audio i/o failure")
	ErrMarkerNotFound    = errors.New("chunk marker not found")
)
