// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrUnsupportedWavChunks  = errors.New("unsupported WAV chunks")

	// ErrUnsupportedChannelCount is returned when encoding a buffer with no
	// channels, or more than a WAV header can describe.
	ErrUnsupportedChannelCount = errors.New("unsupported channel count")

	// ErrDataTooLarge is returned when the PCM data does not fit the 32-bit
	// RIFF size fields.
	ErrDataTooLarge = errors.New("PCM data too large for a WAV file")
)
