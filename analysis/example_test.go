// SPDX-License-Identifier: EPL-2.0

package analysis_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ik5/audiscope/analysis"
	"github.com/ik5/audiscope/internal/audiotest"
	"github.com/ik5/audiscope/scale"
)

func ExampleEstimateLoopLength() {
	const rate = 100

	// A 2.5 second pattern repeated for 20 seconds.
	samples := audiotest.Tile(audiotest.Noise(250, 10000, 1), 20*rate)

	length, err := analysis.EstimateLoopLength(context.Background(), samples, rate,
		analysis.SecondsRange(1, 4, rate), analysis.LoopOptions{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("loop: %d frames (%.1f s)\n", length, float64(length)/rate)
	// Output:
	// loop: 250 frames (2.5 s)
}

func ExampleLoopVariances() {
	samples := audiotest.Tile([]int{1, 2, 3, 4}, 40)

	v, err := analysis.LoopVariances(context.Background(), 4, samples, 4,
		analysis.ScanOptions{WindowSeconds: 2, Scale: scale.Linear})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(v)
	// Output:
	// [0 0 0 0]
}

func ExampleMeasureGain() {
	samples := audiotest.Square(100, 2, 32767, -32768)

	g, err := analysis.MeasureGain(context.Background(), samples, 16)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("peak %.3f dBFS, rms %.3f dBFS\n", g.PeakDBFS, g.RMSDBFS)
	// Output:
	// peak 0.000 dBFS, rms 0.000 dBFS
}

func ExampleNormalise() {
	cutouts := []float64{0.1, 0.2, 0.3}
	gradients := []float64{1, 5, 9}

	analysis.Normalise(cutouts, gradients)

	fmt.Printf("%.1f %.1f\n", cutouts, gradients)
	// Output:
	// [1.0 5.0 9.0] [1.0 5.0 9.0]
}
