// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/pitch"
)

var pitchCmd = &cobra.Command{
	Use:   "pitch IN OUT",
	Short: "Shift pitch and tempo",
	Long: `Shift the pitch of IN by --semitones and --cents, change its tempo by
--speed, and write the result to OUT.

By default pitch and tempo are independent. With --linked both change in one
resampling pass, like speeding up a tape.

--from-key and --to-key set --semitones to the shortest transposition between
two keys (C, C#, Db, ..., B; a trailing m for minor is accepted).

Examples:
  audedit pitch clip.wav up.wav --semitones 3
  audedit pitch clip.wav slow.wav --speed 0.75
  audedit pitch song.wav e.wav --from-key C --to-key E`,
	Args: cobra.ExactArgs(2),
	RunE: runPitch,
}

func init() {
	pitchCmd.Flags().Float32("semitones", 0, "pitch shift in semitones [-24, 24]")
	pitchCmd.Flags().Float32("cents", 0, "fine pitch shift in cents [-100, 100]")
	pitchCmd.Flags().Float32("speed", 1, "tempo factor [0.25, 4]")
	pitchCmd.Flags().Bool("linked", false, "change pitch and tempo together")
	pitchCmd.Flags().String("from-key", "", "original key")
	pitchCmd.Flags().String("to-key", "", "target key")
	pitchCmd.Flags().Float32("fade-in", 0, "fade-in length in seconds")
	pitchCmd.Flags().Float32("fade-out", 0, "fade-out length in seconds")
	pitchCmd.Flags().Bool("mono", false, "downmix to mono")
}

func runPitch(cmd *cobra.Command, args []string) error {
	p := current.Pitch
	overrideFloat32(cmd, "semitones", &p.Semitones)
	overrideFloat32(cmd, "cents", &p.Cents)
	overrideFloat32(cmd, "speed", &p.Speed)
	overrideBool(cmd, "linked", &p.Linked)
	overrideString(cmd, "from-key", &p.FromKey)
	overrideString(cmd, "to-key", &p.ToKey)
	if cmd.Flags().Changed("semitones") && !cmd.Flags().Changed("from-key") {
		// explicit semitones beat keys from the preset
		p.FromKey, p.ToKey = "", ""
	}

	spec, err := p.Spec()
	if err != nil {
		return err
	}

	env := current.Envelope
	overrideFloat32(cmd, "fade-in", &env.FadeIn)
	overrideFloat32(cmd, "fade-out", &env.FadeOut)
	overrideBool(cmd, "mono", &env.Mono)

	b, err := audedit.LoadFile(registry, args[0], 0)
	if err != nil {
		return err
	}

	out, _, err := pitch.Render(b, spec, pitch.RenderOptions{
		FadeInSeconds:  env.FadeIn,
		FadeOutSeconds: env.FadeOut,
		Mono:           env.Mono,
	})
	if err != nil {
		return err
	}
	return audedit.ExportFile(args[1], out, sampleRate(cmd))
}
