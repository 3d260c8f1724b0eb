// SPDX-License-Identifier: EPL-2.0

package mix_test

import (
	"errors"
	"fmt"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/mix"
)

func ExampleMix() {
	first, _ := audio.FromChannels(1, []float32{1, 1})
	second, _ := audio.FromChannels(1, []float32{1, 1})

	out, _, err := mix.Mix([]mix.Track{
		mix.NewTrack(first),
		mix.NewTrack(second),
	}, mix.Settings{GapSeconds: 1})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out.Channels[0])
	// Output:
	// [1 1 0 1 1]
}

func ExampleMix_zeroTracks() {
	_, _, err := mix.Mix(nil, mix.Settings{})
	fmt.Println(errors.Is(err, mix.ErrZeroTracks))
	// Output:
	// true
}
