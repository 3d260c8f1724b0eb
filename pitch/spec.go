// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"
	"math"

	"github.com/ik5/audedit/audio"
)

// Parameter ranges. Values outside them are clamped with a warning.
const (
	MinSemitones = -24
	MaxSemitones = 24
	MinCents     = -100
	MaxCents     = 100
	MinSpeed     = 0.25
	MaxSpeed     = 4
)

// Spec describes a pitch/tempo change.
type Spec struct {
	Semitones float32
	Cents     float32
	// Speed is the tempo factor; 2 plays twice as fast.
	Speed float32
	// Linked changes pitch and duration together in one resampling pass.
	Linked bool
}

// Identity returns a spec that leaves audio unchanged.
func Identity() Spec {
	return Spec{Speed: 1}
}

// ForKeys returns a decoupled spec that transposes original to target.
func ForKeys(original, target string) (Spec, error) {
	shift, err := KeyShift(original, target)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Semitones: float32(shift), Speed: 1}, nil
}

// TotalSemitones is Semitones + Cents/100.
func (s Spec) TotalSemitones() float64 {
	return float64(s.Semitones) + float64(s.Cents)/100
}

// Ratio is the frequency multiplier 2^(TotalSemitones/12).
func (s Spec) Ratio() float64 {
	return math.Pow(2, s.TotalSemitones()/12)
}

// PlaybackRate is how much faster the output plays than the input:
// Ratio()*Speed when linked, Speed otherwise.
func (s Spec) PlaybackRate() float64 {
	if s.Linked {
		return s.Ratio() * float64(s.Speed)
	}
	return float64(s.Speed)
}

// OutputLength returns the rendered length of an n-sample input.
func (s Spec) OutputLength(n int) int {
	return int(math.Ceil(float64(n) / s.PlaybackRate()))
}

// IsIdentity reports whether s leaves audio unchanged.
func (s Spec) IsIdentity() bool {
	return s.TotalSemitones() == 0 && s.Speed == 1
}

// Clamp validates s and clamps its fields to their ranges.
// A non-positive or NaN speed and a non-finite shift are errors.
func (s Spec) Clamp() (Spec, audio.Warnings, error) {
	var warns audio.Warnings

	if !(s.Speed > 0) || math.IsInf(float64(s.Speed), 0) {
		return s, nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, s.Speed)
	}
	for _, v := range []float32{s.Semitones, s.Cents} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return s, nil, fmt.Errorf("%w: %v", ErrInvalidShift, v)
		}
	}

	s.Semitones = clampField(&warns, audio.FieldSemitones, s.Semitones, MinSemitones, MaxSemitones)
	s.Cents = clampField(&warns, audio.FieldCents, s.Cents, MinCents, MaxCents)
	s.Speed = clampField(&warns, audio.FieldSpeed, s.Speed, MinSpeed, MaxSpeed)

	return s, warns, nil
}

func clampField(warns *audio.Warnings, field string, v, lo, hi float32) float32 {
	clamped := min(max(v, lo), hi)
	if clamped != v {
		warns.Clamp(field, float64(v), float64(clamped))
	}
	return clamped
}
