// SPDX-License-Identifier: EPL-2.0

package split

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/formats/aiff"
	"github.com/ik5/audiscope/formats/au"
	"github.com/ik5/audiscope/formats/wav"
)

type container int

const (
	containerWAV container = iota
	containerAIFF
	containerAU
)

func containerFor(path string) (container, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "wav", "wave":
		return containerWAV, nil
	case "aif", "aiff":
		return containerAIFF, nil
	case "au", "snd":
		return containerAU, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedSplit, filepath.Base(path))
}

// layout is where the audio of a source file lives.
type layout struct {
	container container
	format    audio.Format
	unsigned  bool
	dataStart int64
	dataEnd   int64
}

var dataID = [4]byte{'d', 'a', 't', 'a'}

func readLayout(r io.ReadSeeker, c container, fileSize int64) (layout, error) {
	l := layout{container: c}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return l, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	var declared int64
	switch c {
	case containerWAV:
		h, err := wav.ReadHeader(r)
		if err != nil {
			return l, err
		}
		l.format, l.dataStart, declared = h.Format, h.DataOffset, h.DataSize
		l.unsigned = h.Format.BitDepth == 8
		// A RIFF data size is 32 bits; past 4 GiB writers store it wrapped.
		if !h.RF64 && fileSize > math.MaxUint32 {
			declared = 0
		}
	case containerAIFF:
		h, err := aiff.ReadHeader(r)
		if err != nil {
			return l, err
		}
		l.format, l.dataStart, declared = h.Format, h.DataOffset, h.DataSize
	case containerAU:
		h, err := au.ReadHeader(r)
		if err != nil {
			return l, err
		}
		l.format, l.dataStart, declared = h.Format, h.DataOffset, h.DataSize
	}

	if l.format.Channels < 1 || l.format.Channels > audio.MaxChannels || l.format.BitDepth%8 != 0 || l.format.BitDepth < 8 || l.format.BitDepth > 32 {
		return l, fmt.Errorf("%w: %s", ErrUnsupportedSplit, l.format)
	}

	// Sizes of files past 4 GiB cannot be declared, so the data runs to the
	// end of the file.
	l.dataEnd = fileSize
	if declared > 0 && l.dataStart+declared <= fileSize {
		l.dataEnd = l.dataStart + declared
	}

	return l, nil
}

// wavHeaderEnd streams the header region for the "data" chunk marker that
// introduces the samples and returns the header length. Earlier matches,
// for example inside a LIST chunk, are skipped.
func wavHeaderEnd(r io.ReaderAt, dataStart int64) (int64, error) {
	var base int64
	for base < dataStart {
		at, err := audio.FindMarker(io.NewSectionReader(r, base, dataStart-base), dataID, 0)
		if err != nil {
			return 0, err
		}
		if end := base + at + 8; end == dataStart {
			return end, nil
		}
		base += at + 1
	}

	return 0, fmt.Errorf("%w: %q", audio.ErrMarkerNotFound, dataID[:])
}
