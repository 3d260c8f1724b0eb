// SPDX-License-Identifier: EPL-2.0

// Command audedit cuts, joins, transposes and analyzes WAV and AIFF files.
//
// Usage:
//
//	audedit [flags] <command> [args]
//
// Commands:
//
//	cut     - trim a region and shape it with fades, gain and normalization
//	join    - place files one after another with a gap or crossfade
//	pitch   - shift pitch and/or tempo
//	detect  - print the detected pitch over time
//	info    - print sample rate, channels and duration
//
// Output is always 16-bit PCM WAV.
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audedit/cmd/audedit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
