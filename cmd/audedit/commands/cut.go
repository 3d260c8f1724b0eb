// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
)

var cutCmd = &cobra.Command{
	Use:   "cut IN OUT",
	Short: "Trim a region and shape it",
	Long: `Trim IN to the region between --start and --end (mm:ss.mmm) and write it
to OUT. Fades, gain, normalization and mono downmix are applied to the region
in that order.

Example:
  audedit cut take.wav clip.wav --start 00:01.250 --end 00:04.000 --fade-out 0.5`,
	Args: cobra.ExactArgs(2),
	RunE: runCut,
}

func init() {
	cutCmd.Flags().String("start", "00:00.000", "region start (mm:ss.mmm)")
	cutCmd.Flags().String("end", "", "region end (mm:ss.mmm, default: end of input)")
	addEnvelopeFlags(cutCmd)
}

func addEnvelopeFlags(cmd *cobra.Command) {
	cmd.Flags().Float32("fade-in", 0, "fade-in length in seconds")
	cmd.Flags().Float32("fade-out", 0, "fade-out length in seconds")
	cmd.Flags().Float32("gain", 1, "linear gain")
	cmd.Flags().Bool("normalize", false, "normalize peak to 0.95")
	cmd.Flags().Bool("mono", false, "downmix to mono")
}

func envelopeSettings(cmd *cobra.Command) audedit.EnvelopeSettings {
	env := current.Envelope
	overrideFloat32(cmd, "fade-in", &env.FadeIn)
	overrideFloat32(cmd, "fade-out", &env.FadeOut)
	overrideFloat32(cmd, "gain", &env.Gain)
	overrideBool(cmd, "normalize", &env.Normalize)
	overrideBool(cmd, "mono", &env.Mono)
	return env.Settings()
}

func runCut(cmd *cobra.Command, args []string) error {
	b, err := audedit.LoadFile(registry, args[0], 0)
	if err != nil {
		return err
	}

	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	if end == "" {
		// whole milliseconds so the default end never overshoots the input
		end = audio.FormatTime(math.Floor(b.Duration()*1000) / 1000)
	}

	out, _, err := audedit.Cut(b, start, end, envelopeSettings(cmd))
	if err != nil {
		return err
	}
	return audedit.ExportFile(args[1], out, sampleRate(cmd))
}
