// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files into
// audio sources and buffers, using github.com/go-audio/aiff.
//
// Only 16-bit PCM is accepted. AIFF is big-endian; samples come out as
// float32 in [-1, 1) either way.
//
//	f, _ := os.Open("take.aif")
//	b, err := aiff.DecodeBuffer(f)
//	if errors.Is(err, aiff.ErrOnlyPCM16bitSupported) {
//	    // 8/24/32-bit or AIFF-C
//	}
//
// Decoder implements audio.Decoder and can be registered alongside the WAV
// decoder:
//
//	reg := audio.NewRegistry()
//	reg.Register(".aiff", aiff.Decoder{})
//	reg.Register(".aif", aiff.Decoder{})
//
// Writing AIFF is not supported; export always goes through formats/wav.
package aiff
