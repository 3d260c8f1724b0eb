// SPDX-License-Identifier: EPL-2.0

// Package pitch changes the pitch and tempo of buffers and estimates the
// pitch of short windows.
//
// # Transforms
//
// A Spec holds a shift in semitones and cents plus a speed factor. In linked
// mode Render resamples once at Ratio()*Speed, so pitch and duration move
// together like a tape played faster. In decoupled mode the pitch is moved by
// resampling and the duration is then fixed with a WSOLA time-stretch, which
// keeps the tempo at Speed regardless of the shift.
//
// # Detection
//
// Detector estimates the fundamental of a window with a normalized
// autocorrelation (mean absolute difference) and maps it to the nearest note.
// Tracker keeps a rolling window fed from a live stream; the host calls Poll
// at its own cadence. Nothing in this package starts goroutines or timers.
package pitch
