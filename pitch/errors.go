// SPDX-License-Identifier: EPL-2.0

package pitch

import "errors"

var (
	// ErrNoPitchDetected is the normal result for silence or noise.
	ErrNoPitchDetected = errors.New("no pitch detected")

	ErrUnknownKey      = errors.New("unknown musical key")
	ErrInvalidSpeed    = errors.New("speed must be a positive number")
	ErrInvalidShift    = errors.New("pitch shift must be a finite number")
	ErrInvalidWindow   = errors.New("window size must be at least 2 samples")
	ErrInvalidHop      = errors.New("hop must be at least 1 sample")
	ErrNilBuffer       = errors.New("buffer is nil")
	ErrInvalidDetector = errors.New("detector sample rate must be positive")
)
