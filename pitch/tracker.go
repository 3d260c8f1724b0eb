// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"github.com/ik5/audedit/audio"
)

// Tracker runs a Detector over a rolling Window.
//
// A host feeds it from its audio callback with Write and calls Poll from its
// own frame or timer tick. Poll never blocks on the writer for longer than a
// copy of the window, and stopping is simply not calling it again.
type Tracker struct {
	detector *Detector
	window   *Window
	scratch  []float32
}

// NewTracker returns a tracker analysing the last windowSize samples.
func NewTracker(d *Detector, windowSize int) *Tracker {
	return &Tracker{
		detector: d,
		window:   NewWindow(windowSize),
		scratch:  make([]float32, windowSize),
	}
}

// Write appends mono samples.
func (t *Tracker) Write(samples []float32) {
	t.window.Write(samples)
}

// WriteInterleaved downmixes interleaved frames to mono and appends them.
func (t *Tracker) WriteInterleaved(samples []float32, channels int) {
	if channels <= 1 {
		t.window.Write(samples)
		return
	}
	b, err := audio.Deinterleave(max(t.detector.SampleRate, 1), channels, samples)
	if err != nil {
		return
	}
	t.window.Write(audio.Downmix(b).Channels[0])
}

// Poll analyses the current window. Until the window has filled it reports
// ErrNoPitchDetected. Poll is not safe for concurrent use with itself.
func (t *Tracker) Poll() (Detected, error) {
	if !t.window.Full() {
		return Detected{}, ErrNoPitchDetected
	}
	t.scratch = t.window.Snapshot(t.scratch)
	return t.detector.Detect(t.scratch)
}

// Reset clears the window, e.g. when the input device changes.
func (t *Tracker) Reset() {
	t.window.Reset()
}
