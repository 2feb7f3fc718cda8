// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/audiscope/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrUnsupportedFormat)

	// ErrUnsupportedBitDepth indicates a sample width other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported AIFF bit depth", audio.ErrUnsupportedFormat)

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = fmt.Errorf("%w: unsupported AIFF layout", audio.ErrUnsupportedFormat)
)
