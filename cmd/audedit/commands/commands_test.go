// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/wav"
	"github.com/ik5/audedit/internal/audiotest"
	"github.com/ik5/audedit/internal/preset"
)

// The commands share package-level flag state, so the steps run in order
// and never in parallel.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	tone := audiotest.Sine(8000, 8000, 440, 0.5)
	in, _ := audio.FromChannels(8000, tone, tone)
	if err := audedit.ExportFile(path("in.wav"), in, 0); err != nil {
		t.Fatal(err)
	}

	run := func(t *testing.T, args ...string) []byte {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		if err := Execute(); err != nil {
			t.Fatalf("audedit %v: %v", args, err)
		}
		return out.Bytes()
	}

	frames := func(t *testing.T, name string) int {
		t.Helper()
		f, err := os.Open(path(name))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		b, err := wav.DecodeBuffer(f)
		if err != nil {
			t.Fatal(err)
		}
		return b.Len()
	}

	t.Run("cut", func(t *testing.T) {
		run(t, "cut", path("in.wav"), path("clip.wav"), "--start", "00:00.250", "--end", "00:00.750", "--fade-in", "0.01")
		if got := frames(t, "clip.wav"); got != 4000 {
			t.Errorf("clip has %d frames, want 4000", got)
		}
	})

	t.Run("join", func(t *testing.T) {
		run(t, "join", path("joined.wav"), path("clip.wav"), path("clip.wav"), "--gap", "0.5")
		if got := frames(t, "joined.wav"); got != 12000 {
			t.Errorf("joined has %d frames, want 12000", got)
		}
	})

	t.Run("pitch", func(t *testing.T) {
		run(t, "pitch", path("clip.wav"), path("fast.wav"), "--speed", "2")
		if got := frames(t, "fast.wav"); got != 2000 {
			t.Errorf("fast has %d frames, want 2000", got)
		}
	})

	t.Run("rate", func(t *testing.T) {
		run(t, "cut", path("in.wav"), path("hi.wav"), "--start", "00:00.000", "--end", "00:00.500", "--rate", "16000")
		f, err := os.Open(path("hi.wav"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		info, err := wav.Probe(f)
		if err != nil {
			t.Fatal(err)
		}
		if info.SampleRate != 16000 {
			t.Errorf("sample rate = %d, want 16000", info.SampleRate)
		}
	})

	t.Run("detect", func(t *testing.T) {
		for _, mode := range [][]string{nil, {"--stream"}} {
			args := append([]string{"detect", path("in.wav"), "--json"}, mode...)
			var result detectResult
			if err := json.Unmarshal(run(t, args...), &result); err != nil {
				t.Fatal(err)
			}
			if result.SampleRate != 8000 || len(result.Voiced) == 0 {
				t.Fatalf("%v: result = %+v", mode, result)
			}
			if result.Voiced[0].Note != "A4" {
				t.Errorf("%v: first note = %s, want A4", mode, result.Voiced[0].Note)
			}
		}
	})

	t.Run("info", func(t *testing.T) {
		var infos []fileInfo
		if err := json.Unmarshal(run(t, "info", path("in.wav"), "--json"), &infos); err != nil {
			t.Fatal(err)
		}
		if len(infos) != 1 || infos[0].SampleRate != 8000 || infos[0].Channels != 2 || infos[0].BitDepth != 16 {
			t.Errorf("info = %+v", infos)
		}
	})

	// Leaves --to-key set, so it runs last.
	t.Run("pitch half key pair", func(t *testing.T) {
		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"pitch", path("clip.wav"), path("keyed.wav"), "--to-key", "C"})
		if err := Execute(); !errors.Is(err, preset.ErrUnpairedKey) {
			t.Errorf("pitch --to-key only: error = %v, want %v", err, preset.ErrUnpairedKey)
		}
		if _, err := os.Stat(path("keyed.wav")); !os.IsNotExist(err) {
			t.Errorf("keyed.wav written despite the error")
		}
	})
}
