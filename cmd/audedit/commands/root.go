// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/preset"
)

var (
	// Global flags
	presetFile string
	outputRate int
	outputJSON bool
	verbose    bool

	current  = preset.Default()
	registry = audedit.DefaultRegistry()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audedit",
	Short: "Audio cutting, joining and pitch tool",
	Long: `audedit edits WAV and AIFF files and writes 16-bit PCM WAV.

Parameters that are out of range are clamped, never rejected; every clamp is
reported on stderr.

Defaults for every command can be kept in a preset file (YAML or JSON):

  sample_rate: 44100
  envelope:
    fade_in: 0.05
    fade_out: 0.5
  mix:
    crossfade: 0.25
  pitch:
    from_key: A
    to_key: C
  detect:
    window: 4096
    hop: 2048

Flags given on the command line override the preset.

Examples:
  audedit cut take.wav clip.wav --start 00:01.250 --end 00:04.000 --fade-out 0.5
  audedit join mix.wav intro.wav verse.aiff --crossfade 0.25
  audedit pitch clip.wav up.wav --semitones 3
  audedit --preset live.yaml detect vocal.wav --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger()
		return initPreset()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&presetFile, "preset", "p", "", "preset file (YAML or JSON)")
	rootCmd.PersistentFlags().IntVarP(&outputRate, "rate", "r", 0, "conform output to this sample rate (default: keep input rate)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON instead of YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(cutCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(pitchCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(infoCmd)
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	audio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func initPreset() error {
	if presetFile == "" {
		return nil
	}
	p, err := preset.Load(presetFile)
	if err != nil {
		return err
	}
	current = p
	return nil
}

// sampleRate returns the --rate flag, falling back to the preset.
func sampleRate(cmd *cobra.Command) int {
	if cmd.Flags().Changed("rate") {
		return outputRate
	}
	return current.SampleRate
}
