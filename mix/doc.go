// SPDX-License-Identifier: EPL-2.0

// Package mix joins tracks into one buffer.
//
// Tracks are placed one after another. Each track carries its own gain and
// fades; Settings adds a silent gap or a linear crossfade between adjacent
// tracks. Overlapping samples are summed, so a crossfade is the incoming
// track ramping up on top of the tail of the outgoing one.
//
// Tracks are conformed to the sample rate of the first track, and a track
// with fewer channels than the widest one repeats its channel 0.
package mix
