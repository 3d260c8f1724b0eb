// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// # Writing
//
// Encode and Write produce the canonical 44-byte RIFF/WAVE header followed
// by interleaved little-endian int16 frames (ch0, ch1, ch0, ch1, ...).
// Float samples are clamped to [-1, 1] and scaled asymmetrically, by 32768
// below zero and by 32767 otherwise, truncating toward zero. The output is
// byte-for-byte reproducible for a given buffer.
//
//	data, err := wav.Encode(buf)
//	if err != nil {
//	    // wav.ErrUnsupportedChannelCount for a buffer without channels
//	}
//	serve(data, wav.MimeType)
//
// WriteWAV16 writes samples that are already int16.
//
// # Reading
//
// Decoder uses github.com/go-audio/wav and returns an audio.Source, so it
// can be registered in an audio.Registry. DecodeBuffer reads a whole file
// into an audio.Buffer and Probe reports the format without decoding.
//
//	buf, err := wav.DecodeBuffer(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Only PCM 16-bit input is accepted (ErrOnlyPCM16bitSupported otherwise).
package wav
