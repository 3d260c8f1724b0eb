// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// SampleAt reads samples at a fractional position using cubic interpolation.
// Neighbours outside the slice repeat the edge sample, so integer positions
// return the stored value unchanged.
func SampleAt(samples []float32, pos float64) float32 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	idx := int(math.Floor(pos))
	frac := float32(pos - float64(idx))

	return CubicInterpolate(
		clampedSample(samples, idx-1),
		clampedSample(samples, idx),
		clampedSample(samples, idx+1),
		clampedSample(samples, idx+2),
		frac,
	)
}

func clampedSample(samples []float32, idx int) float32 {
	if idx < 0 {
		return samples[0]
	}
	if idx >= len(samples) {
		return samples[len(samples)-1]
	}
	return samples[idx]
}
