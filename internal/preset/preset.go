// SPDX-License-Identifier: EPL-2.0

// Package preset loads editing presets for the audedit command.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/mix"
	"github.com/ik5/audedit/pitch"
)

var (
	// ErrInvalidPreset is returned by Validate.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrUnpairedKey is returned by Pitch.Spec when only one of the two keys
	// is set.
	ErrUnpairedKey = errors.New("from and to keys must be set together")
)

// Preset holds default parameters for every command. Durations are in
// seconds.
type Preset struct {
	// SampleRate conforms output when positive.
	SampleRate int      `yaml:"sample_rate" json:"sample_rate"`
	Envelope   Envelope `yaml:"envelope" json:"envelope"`
	Mix        Mix      `yaml:"mix" json:"mix"`
	Pitch      Pitch    `yaml:"pitch" json:"pitch"`
	Detect     Detect   `yaml:"detect" json:"detect"`
}

type Envelope struct {
	Gain      float32 `yaml:"gain" json:"gain"`
	FadeIn    float32 `yaml:"fade_in" json:"fade_in"`
	FadeOut   float32 `yaml:"fade_out" json:"fade_out"`
	Normalize bool    `yaml:"normalize" json:"normalize"`
	Mono      bool    `yaml:"mono" json:"mono"`
}

type Mix struct {
	Gap       float32 `yaml:"gap" json:"gap"`
	Crossfade float32 `yaml:"crossfade" json:"crossfade"`
	Normalize bool    `yaml:"normalize" json:"normalize"`
}

type Pitch struct {
	Semitones float32 `yaml:"semitones" json:"semitones"`
	Cents     float32 `yaml:"cents" json:"cents"`
	Speed     float32 `yaml:"speed" json:"speed"`
	Linked    bool    `yaml:"linked" json:"linked"`
	// FromKey and ToKey, when both set, replace Semitones with the shortest
	// transposition between the two keys.
	FromKey string `yaml:"from_key" json:"from_key"`
	ToKey   string `yaml:"to_key" json:"to_key"`
}

type Detect struct {
	Window      int     `yaml:"window" json:"window"`
	Hop         int     `yaml:"hop" json:"hop"`
	ReferenceA4 float64 `yaml:"a4" json:"a4"`
	Sensitivity float64 `yaml:"sensitivity" json:"sensitivity"`
}

// Default returns the preset used when no file is given.
func Default() Preset {
	return Preset{
		Envelope: Envelope{Gain: 1},
		Pitch:    Pitch{Speed: 1},
		Detect: Detect{
			Window:      4096,
			Hop:         2048,
			ReferenceA4: pitch.DefaultReferenceA4,
			Sensitivity: pitch.DefaultSensitivity,
		},
	}
}

// Load reads a YAML or JSON preset file on top of Default.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data on top of Default. ext selects the format; anything
// other than ".json", ".yaml" or ".yml" tries YAML first, then JSON.
func Parse(data []byte, ext string) (Preset, error) {
	p := Default()

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return Preset{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Preset{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			p = Default()
			if err := json.Unmarshal(data, &p); err != nil {
				return Preset{}, fmt.Errorf("failed to parse preset (tried YAML and JSON): %w", err)
			}
		}
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Validate rejects values the core would fail on. Out-of-range durations,
// gains and shifts are left to the core, which clamps them.
func (p Preset) Validate() error {
	switch {
	case p.SampleRate < 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidPreset, p.SampleRate)
	case !(p.Pitch.Speed > 0):
		return fmt.Errorf("%w: pitch.speed %v", ErrInvalidPreset, p.Pitch.Speed)
	case p.Detect.Window <= 0:
		return fmt.Errorf("%w: detect.window %d", ErrInvalidPreset, p.Detect.Window)
	case p.Detect.Hop <= 0:
		return fmt.Errorf("%w: detect.hop %d", ErrInvalidPreset, p.Detect.Hop)
	case !(p.Detect.ReferenceA4 > 0):
		return fmt.Errorf("%w: detect.a4 %v", ErrInvalidPreset, p.Detect.ReferenceA4)
	case !(p.Detect.Sensitivity > 0):
		return fmt.Errorf("%w: detect.sensitivity %v", ErrInvalidPreset, p.Detect.Sensitivity)
	case (p.Pitch.FromKey == "") != (p.Pitch.ToKey == ""):
		return fmt.Errorf("%w: pitch.from_key and pitch.to_key go together", ErrInvalidPreset)
	}
	return nil
}

func (e Envelope) Settings() audedit.EnvelopeSettings {
	return audedit.EnvelopeSettings{
		Gain:           e.Gain,
		FadeInSeconds:  e.FadeIn,
		FadeOutSeconds: e.FadeOut,
		Normalize:      e.Normalize,
		Mono:           e.Mono,
	}
}

func (m Mix) Settings() mix.Settings {
	return mix.Settings{
		GapSeconds:       m.Gap,
		CrossfadeSeconds: m.Crossfade,
		Normalize:        m.Normalize,
	}
}

// Spec resolves the keys, if any, and returns the transform.
func (p Pitch) Spec() (pitch.Spec, error) {
	spec := pitch.Spec{
		Semitones: p.Semitones,
		Cents:     p.Cents,
		Speed:     p.Speed,
		Linked:    p.Linked,
	}
	if (p.FromKey == "") != (p.ToKey == "") {
		return pitch.Spec{}, fmt.Errorf("%w: from %q, to %q", ErrUnpairedKey, p.FromKey, p.ToKey)
	}
	if p.FromKey != "" {
		shift, err := pitch.KeyShift(p.FromKey, p.ToKey)
		if err != nil {
			return pitch.Spec{}, err
		}
		spec.Semitones = float32(shift)
	}
	return spec, nil
}

// Detector returns a detector for audio at sampleRate.
func (d Detect) Detector(sampleRate int) *pitch.Detector {
	det := pitch.NewDetector(sampleRate)
	det.ReferenceA4 = d.ReferenceA4
	det.Sensitivity = d.Sensitivity
	return det
}
