// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiscope/progress"
)

const (
	DefaultBufferSize    = 100_000_000
	DefaultMaxBitDepth   = 32
	DefaultMaxSampleRate = 96000
)

type ReadOptions struct {
	// BufferSize is the number of source bytes decoded per chunk.
	BufferSize    int
	MaxBitDepth   int
	MaxSampleRate int
	Reporter      *progress.Reporter
}

func (o ReadOptions) withDefaults() ReadOptions {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.MaxBitDepth <= 0 {
		o.MaxBitDepth = DefaultMaxBitDepth
	}
	if o.MaxSampleRate <= 0 {
		o.MaxSampleRate = DefaultMaxSampleRate
	}

	return o
}

// Read decodes src into a mono Buffer, chunk by chunk. Silent frames are
// removed from the very start and the very end of the stream only.
func Read(ctx context.Context, src Source, opts ReadOptions) (*Buffer, error) {
	opts = opts.withDefaults()

	format := src.Format()
	if err := format.Check(opts.MaxBitDepth, opts.MaxSampleRate); err != nil {
		return nil, err
	}

	frameSize := int64(format.FrameSize())
	framesPerChunk := max(1, opts.BufferSize/int(frameSize))
	total := src.DataSize()
	if total > 0 {
		framesPerChunk = int(min(int64(framesPerChunk), total/frameSize+1))
	}

	mixer := NewMonoMixer(src)
	chunk := make([]int, framesPerChunk)
	silent := make([]bool, framesPerChunk)

	capHint := 0
	if total > 0 {
		capHint = int(total / frameSize)
	}
	samples := make([]int, 0, capHint)

	leading := true
	trailing := 0
	var processed int64

	opts.Reporter.Restart()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := mixer.ReadFrames(chunk, silent)
		for i := range n {
			if leading {
				if silent[i] {
					continue
				}
				leading = false
			}
			samples = append(samples, chunk[i])
			if silent[i] {
				trailing++
			} else {
				trailing = 0
			}
		}

		processed += int64(n) * frameSize
		opts.Reporter.Percent(processed, total)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		if n == 0 {
			break
		}
	}

	return &Buffer{
		Samples: samples[:len(samples)-trailing],
		Format:  format,
	}, nil
}
