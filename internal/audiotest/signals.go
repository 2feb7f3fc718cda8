// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Tile repeats pattern until n samples are produced.
func Tile(pattern []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}

	return out
}

// Noise returns n deterministic pseudo-random samples in [-amp, amp], never
// zero.
func Noise(n, amp int, seed uint32) []int {
	out := make([]int, n)
	state := seed | 1
	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		v := int(state%uint32(2*amp+1)) - amp
		if v == 0 {
			v = 1
		}
		out[i] = v
	}

	return out
}

// Sine returns n samples of a sine wave.
func Sine(n, sampleRate int, freq float64, amp int) []int {
	out := make([]int, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = int(math.Round(float64(amp) * math.Sin(2*math.Pi*freq*t)))
	}

	return out
}

// Square returns n samples alternating between hi and lo every half period.
func Square(n, period, hi, lo int) []int {
	out := make([]int, n)
	for i := range out {
		if (i%period)*2 < period {
			out[i] = hi
		} else {
			out[i] = lo
		}
	}

	return out
}
