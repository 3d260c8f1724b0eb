// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
)

var joinCmd = &cobra.Command{
	Use:   "join OUT IN...",
	Short: "Join files end to end",
	Long: `Join the IN files in order and write the result to OUT.

A positive --gap inserts silence between files; --crossfade overlaps them and
ramps each file in over the overlap. Files at other sample rates are conformed
to the rate of the first one.

Example:
  audedit join mix.wav intro.wav verse.aiff --crossfade 0.25`,
	Args: cobra.MinimumNArgs(2),
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().Float32("gap", 0, "silence between files in seconds")
	joinCmd.Flags().Float32("crossfade", 0, "overlap between files in seconds")
	joinCmd.Flags().Bool("normalize", false, "normalize peak to 0.95")
}

func runJoin(cmd *cobra.Command, args []string) error {
	settings := current.Mix
	overrideFloat32(cmd, "gap", &settings.Gap)
	overrideFloat32(cmd, "crossfade", &settings.Crossfade)
	overrideBool(cmd, "normalize", &settings.Normalize)

	buffers := make([]*audio.Buffer, 0, len(args)-1)
	for _, path := range args[1:] {
		b, err := audedit.LoadFile(registry, path, 0)
		if err != nil {
			return err
		}
		buffers = append(buffers, b)
	}

	out, _, err := audedit.Join(buffers, settings.Settings())
	if err != nil {
		return err
	}
	return audedit.ExportFile(args[0], out, sampleRate(cmd))
}
