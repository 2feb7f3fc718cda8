// SPDX-License-Identifier: EPL-2.0

package split

import (
	"fmt"
	"math"

	"github.com/ik5/audiscope/audio"
)

// Plan partitions the audio data of one file. Part i covers the bytes
// [Bounds[i], Bounds[i+1]) with the final part ending at DataEnd.
type Plan struct {
	Bounds  []int64
	DataEnd int64
}

// NewPlan cuts a file of fileSize bytes into at most ceil(fileSize/limit)
// parts. Cuts fall at multiples of limit from the start of the file,
// moved down to a frame boundary. Cuts that land outside
// (dataStart, dataEnd) are dropped, so every part is non-empty. A trailing
// partial frame is not part of any part.
func NewPlan(fileSize, dataStart, dataEnd, limit int64, frameSize int) (Plan, error) {
	if limit <= 0 {
		return Plan{}, ErrInvalidLimit
	}
	if frameSize < 1 {
		return Plan{}, fmt.Errorf("%w: frame size %d", audio.ErrUnsupportedFormat, frameSize)
	}
	fs := int64(frameSize)
	if dataStart < 0 || dataEnd < dataStart {
		return Plan{}, ErrNothingToSplit
	}
	dataEnd = dataStart + (dataEnd-dataStart)/fs*fs
	if dataEnd == dataStart {
		return Plan{}, ErrNothingToSplit
	}

	count := (fileSize + limit - 1) / limit
	p := Plan{Bounds: []int64{dataStart}, DataEnd: dataEnd}

	for k := int64(1); k < count; k++ {
		cut := k * limit
		if cut <= dataStart {
			continue
		}
		cut = dataStart + (cut-dataStart)/fs*fs
		if cut <= p.Bounds[len(p.Bounds)-1] || cut >= dataEnd {
			continue
		}
		p.Bounds = append(p.Bounds, cut)
	}

	return p, nil
}

// Len is the number of parts.
func (p Plan) Len() int { return len(p.Bounds) }

// Part returns the byte range of part i.
func (p Plan) Part(i int) (start, end int64) {
	start = p.Bounds[i]
	end = p.DataEnd
	if i+1 < len(p.Bounds) {
		end = p.Bounds[i+1]
	}

	return start, end
}

// Digits is the zero padded width of part numbers for count parts.
func Digits(count int) int {
	return max(1, int(math.Ceil(math.Log10(float64(count+1)))))
}

// PartName numbers part index (1 based) of count: "name (01).wav".
func PartName(base, ext string, index, count int) string {
	return fmt.Sprintf("%s (%0*d).%s", base, Digits(count), index, ext)
}

// SizeLimit converts gigabytes (10^9 bytes) to a byte limit.
func SizeLimit(gigabytes float64) int64 {
	return int64(math.Round(gigabytes * 1e9))
}

// TimeLimit is the number of bytes minutes and seconds of audio in format
// f occupy.
func TimeLimit(minutes, seconds int, f audio.Format) int64 {
	frames := int64(max(0, minutes)*60+max(0, seconds)) * int64(f.SampleRate)

	return frames * int64(f.BitDepth/8) * int64(f.Channels)
}
