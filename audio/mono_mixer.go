// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the channels of each frame into one integer sample,
// rounding half up.
type MonoMixer struct {
	src Source
	tmp []int
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]int, 4096),
	}
}

func (m *MonoMixer) Format() Format  { return m.src.Format() }
func (m *MonoMixer) DataSize() int64 { return m.src.DataSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples writes one mixed value per frame into dst and returns the
// number of frames.
func (m *MonoMixer) ReadSamples(dst []int) (int, error) {
	return m.ReadFrames(dst, nil)
}

// ReadFrames is ReadSamples that also records, when silent is non-nil,
// whether every channel of each frame was zero. silent must be at least as
// long as dst.
func (m *MonoMixer) ReadFrames(dst []int, silent []bool) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if silent != nil && len(silent) < len(dst) {
		return 0, ErrInvalidDstSize
	}

	channels := m.src.Format().Channels
	if channels == 1 {
		n, err := m.src.ReadSamples(dst)
		if silent != nil {
			for i := range n {
				silent[i] = dst[i] == 0
			}
		}
		return n, err
	}

	samplesNeeded := len(dst) * channels
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]int, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	for f := range frames {
		base := f * channels
		sum := 0
		zero := true
		for c := range channels {
			v := m.tmp[base+c]
			sum += v
			zero = zero && v == 0
		}
		dst[f] = roundedMean(sum, channels)
		if silent != nil {
			silent[f] = zero
		}
	}

	return frames, err
}

// roundedMean is floor(sum/n + 0.5) in integer arithmetic.
func roundedMean(sum, n int) int {
	return floorDiv(2*sum+n, 2*n)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
