// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	// ErrZeroTracks is returned when Mix is called without tracks.
	// Callers usually treat it as "nothing to mix" rather than a failure.
	ErrZeroTracks = errors.New("no tracks to mix")

	ErrNilTrack = errors.New("track has no buffer")

	// ErrOutputTooLarge is returned when the gaps would stretch the mix past
	// MaxLength samples per channel.
	ErrOutputTooLarge = errors.New("mixed output too large")
)
