// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/preset"
	"github.com/ik5/audedit/pitch"
)

var detectCmd = &cobra.Command{
	Use:   "detect IN",
	Short: "Print the detected pitch over time",
	Long: `Run the pitch detector over IN in windows of --window samples every --hop
samples and print every voiced frame.

With --stream the file is fed through the rolling-window tracker hop by hop,
the way a live input would be, instead of being loaded whole.

Example:
  audedit detect vocal.wav --window 4096 --hop 1024 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().Int("window", 4096, "analysis window in samples")
	detectCmd.Flags().Int("hop", 2048, "samples between windows")
	detectCmd.Flags().Float64("a4", pitch.DefaultReferenceA4, "reference frequency of A4 in Hz")
	detectCmd.Flags().Float64("sensitivity", pitch.DefaultSensitivity, "silence gate scale (100 = RMS 0.01)")
	detectCmd.Flags().Bool("stream", false, "feed the file through the rolling-window tracker")
}

type detectFrame struct {
	Time      string  `yaml:"time" json:"time"`
	Frequency float32 `yaml:"frequency_hz" json:"frequency_hz"`
	Note      string  `yaml:"note" json:"note"`
	Cents     int32   `yaml:"cents" json:"cents"`
}

type detectResult struct {
	File       string        `yaml:"file" json:"file"`
	SampleRate int           `yaml:"sample_rate" json:"sample_rate"`
	Windows    int           `yaml:"windows" json:"windows"`
	Voiced     []detectFrame `yaml:"voiced" json:"voiced"`
}

func newDetectFrame(seconds float64, d pitch.Detected) detectFrame {
	return detectFrame{
		Time:      audio.FormatTime(seconds),
		Frequency: d.FrequencyHz,
		Note:      fmt.Sprintf("%s%d", d.Note, d.Octave),
		Cents:     d.Cents,
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	settings := current.Detect
	overrideInt(cmd, "window", &settings.Window)
	overrideInt(cmd, "hop", &settings.Hop)
	overrideFloat64(cmd, "a4", &settings.ReferenceA4)
	overrideFloat64(cmd, "sensitivity", &settings.Sensitivity)

	stream, _ := cmd.Flags().GetBool("stream")

	var (
		result *detectResult
		err    error
	)
	if stream {
		result, err = detectStream(args[0], settings)
	} else {
		result, err = detectBuffer(args[0], settings)
	}
	if err != nil {
		return err
	}
	return outputResult(cmd.OutOrStdout(), result)
}

func detectBuffer(path string, settings preset.Detect) (*detectResult, error) {
	b, err := audedit.LoadFile(registry, path, 0)
	if err != nil {
		return nil, err
	}

	det := settings.Detector(b.SampleRate)
	frames, err := det.AnalyzeBuffer(b, settings.Window, settings.Hop)
	if err != nil {
		return nil, err
	}

	result := &detectResult{File: path, SampleRate: b.SampleRate, Windows: len(frames)}
	for _, f := range frames {
		if f.Voiced {
			result.Voiced = append(result.Voiced, newDetectFrame(f.Time, f.Pitch))
		}
	}
	return result, nil
}

func detectStream(path string, settings preset.Detect) (*detectResult, error) {
	window, hop := settings.Window, settings.Hop
	switch {
	case window < 2:
		return nil, fmt.Errorf("%w: %d", pitch.ErrInvalidWindow, window)
	case hop < 1:
		return nil, fmt.Errorf("%w: %d", pitch.ErrInvalidHop, hop)
	}

	dec, ok := registry.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", audedit.ErrUnknownFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	tracker := pitch.NewTracker(settings.Detector(src.SampleRate()), window)

	channels := src.Channels()
	result := &detectResult{File: path, SampleRate: src.SampleRate()}
	buf := make([]float32, hop*channels)
	pos := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			tracker.WriteInterleaved(buf[:n], channels)
			pos += n / channels

			if pos >= window {
				result.Windows++
				d, perr := tracker.Poll()
				switch {
				case perr == nil:
					start := audio.ToSeconds(pos-window, src.SampleRate())
					result.Voiced = append(result.Voiced, newDetectFrame(start, d))
				case !errors.Is(perr, pitch.ErrNoPitchDetected):
					return nil, perr
				}
			}
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
