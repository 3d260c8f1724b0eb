// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrEmptyRegion is returned when a region's end does not exceed its start by at least one sample.
	ErrEmptyRegion = errors.New("region end must exceed start by at least one sample")

	// ErrInvalidTimeFormat is returned for time text that is not "mm:ss.mmm".
	ErrInvalidTimeFormat = errors.New("time must be formatted as mm:ss.mmm")

	ErrInvalidSampleRate     = errors.New("sample rate must be positive")
	ErrChannelLengthMismatch = errors.New("all channels must have the same length")
	ErrNoChannels            = errors.New("buffer has no channels")
)
