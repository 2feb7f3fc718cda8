// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// mockSource is a test helper that generates integer PCM data.
type mockSource struct {
	format      Format
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) int
	failAfter   int // frames after which ReadSamples fails; 0 disables
	closed      bool
}

func newMockSource(sampleRate, bitDepth, channels, totalFrames int, waveform func(frame int, channel int) int) *mockSource {
	return &mockSource{
		format: Format{
			SampleRate: sampleRate,
			BitDepth:   bitDepth,
			Channels:   channels,
		},
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// newSliceSource plays back mono samples.
func newSliceSource(sampleRate, bitDepth int, samples []int) *mockSource {
	return newMockSource(sampleRate, bitDepth, 1, len(samples), func(frame int, _ int) int {
		return samples[frame]
	})
}

func newConstantSource(sampleRate, channels, totalFrames, value int) *mockSource {
	return newMockSource(sampleRate, 16, channels, totalFrames, func(int, int) int {
		return value
	})
}

var errMockRead = errors.New("mock read failure")

func (m *mockSource) Format() Format { return m.format }
func (m *mockSource) DataSize() int64 {
	return int64(m.totalFrames * m.format.FrameSize())
}
func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []int) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}
	if m.failAfter > 0 && m.generated >= m.failAfter {
		return 0, errMockRead
	}

	channels := m.format.Channels
	frames := min(len(dst)/channels, m.totalFrames-m.generated)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
