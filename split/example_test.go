// SPDX-License-Identifier: EPL-2.0

package split_test

import (
	"fmt"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/split"
)

func ExampleNewPlan() {
	// A 44-byte header followed by 1156 bytes of 16-bit stereo audio.
	plan, err := split.NewPlan(1200, 44, 1200, 400, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i := range plan.Len() {
		start, end := plan.Part(i)
		fmt.Printf("%s: %d-%d\n", split.PartName("take", "wav", i+1, plan.Len()), start, end)
	}
	// Output:
	// take (1).wav: 44-400
	// take (2).wav: 400-800
	// take (3).wav: 800-1200
}

func ExampleTimeLimit() {
	f := audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2}
	fmt.Println(split.TimeLimit(1, 30, f))
	// Output: 15876000
}
