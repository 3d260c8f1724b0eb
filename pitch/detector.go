// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"
	"math"
)

const (
	// DefaultSensitivity scales the silence gate; 100 gives an RMS floor of 0.01.
	DefaultSensitivity = 100.0

	correlationThreshold = 0.9
	fallbackThreshold    = 0.01
)

// Detector estimates the fundamental frequency of a window of mono samples.
// It holds no state between calls.
type Detector struct {
	SampleRate  int
	ReferenceA4 float64
	Sensitivity float64
}

// NewDetector returns a detector for sampleRate with A4 = 440 Hz and
// default sensitivity.
func NewDetector(sampleRate int) *Detector {
	return &Detector{
		SampleRate:  sampleRate,
		ReferenceA4: DefaultReferenceA4,
		Sensitivity: DefaultSensitivity,
	}
}

// Estimate returns the fundamental of window in Hz, or -1 when the window is
// too quiet or has no usable correlation peak.
func (d *Detector) Estimate(window []float32) float64 {
	size := len(window)
	half := size / 2
	if half < 2 || d.SampleRate <= 0 {
		return -1
	}

	if rms(window) < 0.01*(d.Sensitivity/100) {
		return -1
	}

	rate := float64(d.SampleRate)
	correlations := make([]float64, half)

	bestOffset := -1
	bestCorrelation := 0.0
	lastCorrelation := 1.0
	found := false

	// best lag overall, used when no peak clears the threshold
	fallbackOffset := -1
	fallbackCorrelation := 0.0

	for offset := range half {
		var sum float64
		for i := range half {
			sum += math.Abs(float64(window[i] - window[i+offset]))
		}
		correlation := 1 - sum/float64(half)
		correlations[offset] = correlation

		if offset > 0 && correlation > fallbackCorrelation {
			fallbackCorrelation = correlation
			fallbackOffset = offset
		}

		if correlation > correlationThreshold && correlation > lastCorrelation {
			found = true
			if correlation > bestCorrelation {
				bestCorrelation = correlation
				bestOffset = offset
			}
		} else if found {
			// Past the peak: refine its position from its neighbours.
			shift := (correlations[bestOffset+1] - correlations[bestOffset-1]) / correlations[bestOffset]
			return rate / (float64(bestOffset) + 8*shift)
		}
		lastCorrelation = correlation
	}

	if found {
		return rate / float64(bestOffset)
	}
	if fallbackCorrelation > fallbackThreshold {
		return rate / float64(fallbackOffset)
	}
	return -1
}

// Detect estimates the pitch of window and maps it to a note.
// It returns ErrNoPitchDetected when Estimate finds nothing.
func (d *Detector) Detect(window []float32) (Detected, error) {
	if d.SampleRate <= 0 {
		return Detected{}, fmt.Errorf("%w: %d", ErrInvalidDetector, d.SampleRate)
	}

	freq := d.Estimate(window)
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return Detected{}, ErrNoPitchDetected
	}

	a4 := d.ReferenceA4
	if a4 <= 0 {
		a4 = DefaultReferenceA4
	}
	return NoteFromFrequency(freq, a4), nil
}

func rms(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}
