// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample buffer type and the low-level editing
// primitives built on it.
//
// # Buffers
//
// A Buffer holds decoded PCM as one float32 slice per channel plus a sample
// rate. Samples are nominally in [-1.0, 1.0]:
//
//	b := audio.NewBuffer(44100, 2, 44100) // one second of stereo silence
//
// # Regions
//
// Regions map user time ranges onto sample indices:
//
//	r, warns, err := audio.RegionFromText(b, "00:01.250", "00:03.000")
//	if errors.Is(err, audio.ErrEmptyRegion) {
//	    // end <= start
//	}
//	clip := b.Slice(r)
//
// ToSamples rounds down (floor(seconds*rate)) and ToSeconds is its inverse.
//
// # Envelopes
//
// An Envelope applies, in order, mono downmix, linear fade-in, linear
// fade-out, gain and peak normalization (to 0.95):
//
//	env := audio.Envelope{Gain: 1, FadeIn: 4410, FadeOut: 4410, Normalize: true}
//	out, warns := env.Apply(clip)
//
// Out-of-range parameters are clamped rather than rejected. Every clamp is
// returned in the Warnings list and logged through the logger installed with
// SetLogger.
//
// # Streaming
//
// The Source interface is the streaming counterpart of Buffer. Decoders
// return a Source; BufferSource exposes a Buffer as one; Collect drains a
// Source back into a Buffer:
//
//	src := audio.NewBufferSource(b)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//	out, err := audio.Collect(mono)
//
// Resampler uses cubic interpolation and doubles as a playback-rate changer
// (NewRateResampler). Conform performs high-quality sample-rate conversion
// that preserves pitch and duration.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
package audio
