// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"

	"github.com/ik5/audiscope/audio"
)

// MockSource is a test helper that generates integer PCM data.
type MockSource struct {
	format      audio.Format
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) int
}

// NewMockSource creates a source of totalFrames frames whose values come
// from waveform.
func NewMockSource(format audio.Format, totalFrames int, waveform func(frame int, channel int) int) *MockSource {
	return &MockSource{
		format:      format,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSliceSource plays back interleaved samples.
func NewSliceSource(format audio.Format, samples []int) *MockSource {
	return NewMockSource(format, len(samples)/format.Channels, func(frame, channel int) int {
		return samples[frame*format.Channels+channel]
	})
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(format audio.Format, totalFrames int) *MockSource {
	return NewMockSource(format, totalFrames, func(int, int) int { return 0 })
}

func (m *MockSource) Format() audio.Format { return m.format }
func (m *MockSource) DataSize() int64 {
	return int64(m.totalFrames * m.format.FrameSize())
}
func (m *MockSource) Close() error { return nil }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []int) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
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
