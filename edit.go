// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/mix"
)

// EnvelopeSettings is audio.Envelope with fades in seconds, the way an
// editor exposes them.
type EnvelopeSettings struct {
	Gain           float32
	FadeInSeconds  float32
	FadeOutSeconds float32
	Normalize      bool
	Mono           bool
}

// DefaultEnvelope leaves samples untouched.
func DefaultEnvelope() EnvelopeSettings {
	return EnvelopeSettings{Gain: 1}
}

// Envelope converts the fades to samples at sampleRate.
func (e EnvelopeSettings) Envelope(sampleRate int) (audio.Envelope, audio.Warnings) {
	var warns audio.Warnings
	env := audio.Envelope{
		Gain:      e.Gain,
		FadeIn:    audio.DurationToSamples(&warns, audio.FieldFadeIn, e.FadeInSeconds, sampleRate),
		FadeOut:   audio.DurationToSamples(&warns, audio.FieldFadeOut, e.FadeOutSeconds, sampleRate),
		Normalize: e.Normalize,
		Mono:      e.Mono,
	}
	return env, warns
}

// Cut trims b to the region between two "mm:ss.mmm" times and applies env
// to the result. b is not modified.
func Cut(b *audio.Buffer, start, end string, env EnvelopeSettings) (*audio.Buffer, audio.Warnings, error) {
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}

	region, warns, err := audio.RegionFromText(b, start, end)
	if err != nil {
		return nil, warns, err
	}

	e, envWarns := env.Envelope(b.SampleRate)
	warns.Merge(envWarns)

	out, shapeWarns := e.Apply(b.Slice(region))
	warns.Merge(shapeWarns)

	audio.Logger().Debug("cut region",
		"start", region.Start,
		"end", region.End,
		"channels", out.NumChannels(),
	)
	return out, warns, nil
}

// Join mixes buffers end to end at unity gain.
func Join(buffers []*audio.Buffer, s mix.Settings) (*audio.Buffer, audio.Warnings, error) {
	tracks := make([]mix.Track, len(buffers))
	for i, b := range buffers {
		tracks[i] = mix.NewTrack(b)
	}
	return mix.Mix(tracks, s)
}
