// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// NormalizePeak is the peak amplitude targeted by normalization.
const NormalizePeak = 0.95

// Envelope describes the gain shaping applied to a region.
//
// The steps run in a fixed order: mono downmix, fade-in, fade-out, gain,
// normalization. Fade lengths are in samples.
type Envelope struct {
	Gain      float32
	FadeIn    int
	FadeOut   int
	Normalize bool
	Mono      bool
}

// UnityEnvelope returns an envelope that leaves samples untouched.
func UnityEnvelope() Envelope {
	return Envelope{Gain: 1}
}

// Apply returns a new buffer with the envelope applied to b.
func (e Envelope) Apply(b *Buffer) (*Buffer, Warnings) {
	out := b.Clone()
	warns := e.ApplyInPlace(out)
	return out, warns
}

// ApplyInPlace applies the envelope to b, replacing its channels when Mono
// is set. The caller must be the only holder of b.
func (e Envelope) ApplyInPlace(b *Buffer) Warnings {
	var warns Warnings

	if e.Mono && b.NumChannels() >= 2 {
		b.Channels = Downmix(b).Channels
	}

	n := b.Len()
	fadeIn := clampLength(&warns, FieldFadeIn, e.FadeIn, n)
	fadeOut := clampLength(&warns, FieldFadeOut, e.FadeOut, n)

	gain := e.Gain
	if gain < 0 || math.IsNaN(float64(gain)) {
		warns.Clamp(FieldGain, float64(gain), 0)
		gain = 0
	}

	for _, data := range b.Channels {
		FadeIn(data, fadeIn)
		FadeOut(data, fadeOut)
		Gain(data, gain)
		if e.Normalize {
			NormalizeSlice(data)
		}
	}

	return warns
}

// FadeIn ramps the first n samples linearly: s[i] *= i/n.
func FadeIn(s []float32, n int) {
	n = min(n, len(s))
	for i := range n {
		s[i] *= float32(i) / float32(n)
	}
}

// FadeOut ramps the last n samples linearly: s[L-1-i] *= i/n.
func FadeOut(s []float32, n int) {
	n = min(n, len(s))
	last := len(s) - 1
	for i := range n {
		s[last-i] *= float32(i) / float32(n)
	}
}

// Gain scales every sample by g.
func Gain(s []float32, g float32) {
	if g == 1 {
		return
	}
	for i := range s {
		s[i] *= g
	}
}

// Peak returns the largest absolute sample value.
func Peak(s []float32) float32 {
	var peak float32
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// NormalizeSlice scales s so its peak becomes NormalizePeak.
// Silent input is left unchanged.
func NormalizeSlice(s []float32) {
	peak := Peak(s)
	if peak == 0 {
		return
	}
	Gain(s, NormalizePeak/peak)
}

// Downmix averages all channels of b into a new mono buffer.
func Downmix(b *Buffer) *Buffer {
	if b.NumChannels() <= 1 {
		return b.Clone()
	}

	mixer := NewMonoMixer(NewBufferSource(b))
	out := NewBuffer(b.SampleRate, 1, b.Len())

	// The buffer source never fails, so reading to EOF fills out exactly.
	dst := out.Channels[0]
	for len(dst) > 0 {
		n, err := mixer.ReadSamples(dst)
		dst = dst[n:]
		if err != nil || n == 0 {
			break
		}
	}
	return out
}

func clampLength(warns *Warnings, field string, requested, limit int) int {
	switch {
	case requested < 0:
		warns.Clamp(field, float64(requested), 0)
		return 0
	case requested > limit:
		warns.Clamp(field, float64(requested), float64(limit))
		return limit
	}
	return requested
}
