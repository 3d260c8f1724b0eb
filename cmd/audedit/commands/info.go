// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/wav"
)

var infoCmd = &cobra.Command{
	Use:   "info IN...",
	Short: "Print sample rate, channels and duration",
	Long: `Print the stream format of each file without decoding its samples.

Example:
  audedit info take.wav verse.aiff --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

type fileInfo struct {
	File       string `yaml:"file" json:"file"`
	SampleRate int    `yaml:"sample_rate" json:"sample_rate"`
	Channels   int    `yaml:"channels" json:"channels"`
	BitDepth   int    `yaml:"bit_depth" json:"bit_depth"`
	Duration   string `yaml:"duration" json:"duration"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	infos := make([]fileInfo, 0, len(args))
	for _, path := range args {
		info, err := probe(path)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}
	return outputResult(cmd.OutOrStdout(), infos)
}

func probe(path string) (fileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileInfo{}, err
	}
	defer f.Close()

	var (
		rate, channels, depth int
		duration              time.Duration
	)
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "wav", "wave":
		info, err := wav.Probe(f)
		if err != nil {
			return fileInfo{}, fmt.Errorf("%s: %w", path, err)
		}
		rate, channels, depth, duration = info.SampleRate, info.Channels, info.BitDepth, info.Duration
	case "aif", "aiff":
		info, err := aiff.Probe(f)
		if err != nil {
			return fileInfo{}, fmt.Errorf("%s: %w", path, err)
		}
		rate, channels, depth, duration = info.SampleRate, info.Channels, info.BitDepth, info.Duration
	default:
		return fileInfo{}, fmt.Errorf("%w: %s", audedit.ErrUnknownFormat, path)
	}

	return fileInfo{
		File:       path,
		SampleRate: rate,
		Channels:   channels,
		BitDepth:   depth,
		Duration:   audio.FormatTime(duration.Seconds()),
	}, nil
}
