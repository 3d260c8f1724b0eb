// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"

	"github.com/ik5/audedit/audio"
)

// RenderOptions shape the input before it is transformed.
type RenderOptions struct {
	FadeInSeconds  float32
	FadeOutSeconds float32
	// Mono averages all channels into one.
	Mono bool
}

// Render applies spec to b and returns a new buffer at b's sample rate with
// spec.OutputLength(b.Len()) samples.
//
// Fades are applied to the input, before any resampling, so their length is
// measured on the original timeline.
func Render(b *audio.Buffer, spec Spec, opts RenderOptions) (*audio.Buffer, audio.Warnings, error) {
	if b == nil {
		return nil, nil, ErrNilBuffer
	}
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}

	spec, warns, err := spec.Clamp()
	if err != nil {
		return nil, warns, err
	}

	env := audio.Envelope{
		Gain:    1,
		FadeIn:  audio.DurationToSamples(&warns, audio.FieldFadeIn, opts.FadeInSeconds, b.SampleRate),
		FadeOut: audio.DurationToSamples(&warns, audio.FieldFadeOut, opts.FadeOutSeconds, b.SampleRate),
		Mono:    opts.Mono,
	}
	shaped, envWarns := env.Apply(b)
	warns.Merge(envWarns)

	if spec.IsIdentity() {
		return shaped, warns, nil
	}

	var out *audio.Buffer
	if spec.Linked {
		out, err = audio.ChangeRate(shaped, spec.PlaybackRate())
		if err != nil {
			return nil, warns, fmt.Errorf("linked render: %w", err)
		}
	} else {
		pitched := shaped
		if ratio := spec.Ratio(); ratio != 1 {
			if pitched, err = audio.ChangeRate(shaped, ratio); err != nil {
				return nil, warns, fmt.Errorf("pitch pass: %w", err)
			}
		}
		if pitched.Len() < MinStretchLen && spec.Ratio() != 1 {
			// Too short to stretch: the resample back to length undoes the shift.
			warns.Clamp(audio.FieldSemitones, spec.TotalSemitones(), 0)
		}
		out = NewStretcher(b.SampleRate).StretchTo(pitched, spec.OutputLength(b.Len()))
	}

	audio.Logger().Debug("rendered pitch transform",
		"semitones", spec.TotalSemitones(),
		"speed", spec.Speed,
		"linked", spec.Linked,
		"in", b.Len(),
		"out", out.Len(),
	)
	return out, warns, nil
}
