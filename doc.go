// SPDX-License-Identifier: EPL-2.0

// Package audedit ties the audio, mix, pitch and formats packages into the
// three editing jobs a cutting, joining and pitch tool needs: load a file into
// a buffer, edit it, and export it as 16-bit PCM WAV.
//
// # Quick Start
//
//	reg := audedit.DefaultRegistry()
//	b, _ := audedit.LoadFile(reg, "take.wav", 0)
//
//	env := audedit.DefaultEnvelope()
//	env.FadeOutSeconds = 0.5
//	clip, warns, err := audedit.Cut(b, "00:01.250", "00:04.000", env)
//	if err != nil {
//	    // audio.ErrEmptyRegion, audio.ErrInvalidTimeFormat
//	}
//	for _, w := range warns {
//	    fmt.Println(w) // "fadeOut clamped from 132300 to 121275"
//	}
//
//	_ = audedit.ExportFile("clip.wav", clip, 0)
//
// # Joining
//
// Join places buffers one after another with an optional gap or crossfade.
// Buffers at other sample rates are conformed to the first one:
//
//	joined, _, err := audedit.Join([]*audio.Buffer{intro, verse}, mix.Settings{CrossfadeSeconds: 0.25})
//
// # Pitch and tempo
//
// pitch.Render does the work; this package only loads and saves around it:
//
//	spec, _ := pitch.ForKeys("C", "E")
//	shifted, _, err := pitch.Render(b, spec, pitch.RenderOptions{})
//
// # Streaming
//
// Load drains any audio.Source, resampling on the fly with the cubic
// audio.Resampler when a target rate is given. For the lower level pipeline
// use the audio package directly:
//
//	resampler := audio.NewResampler(source, 16000)
//	mono := audio.NewMonoMixer(resampler)
//	b, err := audio.Collect(mono)
//
// # Logging
//
// Clamped parameters are returned as audio.Warnings and also logged at WARN
// level through the logger installed with audio.SetLogger. Nothing is logged
// by default.
package audedit
