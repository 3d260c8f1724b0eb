// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Region is a contiguous sample range [Start, End) of a buffer.
type Region struct {
	Start int
	End   int
}

// Len returns the number of samples in the region.
func (r Region) Len() int { return r.End - r.Start }

// Seconds returns the region bounds in seconds.
func (r Region) Seconds(sampleRate int) (start, end float64) {
	return ToSeconds(r.Start, sampleRate), ToSeconds(r.End, sampleRate)
}

// ToSamples converts a time in seconds to a sample index, rounding down.
// Results beyond the int range saturate at math.MaxInt or math.MinInt.
func ToSamples(seconds float64, sampleRate int) int {
	samples := math.Floor(seconds * float64(sampleRate))
	switch {
	case samples >= float64(math.MaxInt):
		return math.MaxInt
	case samples <= float64(math.MinInt):
		return math.MinInt
	}
	return int(samples)
}

// ToSeconds converts a sample index to seconds.
func ToSeconds(sample int, sampleRate int) float64 {
	return float64(sample) / float64(sampleRate)
}

// ParseTime parses "mm:ss.mmm" into seconds. The text must split on ':' and
// '.' into exactly three unsigned integers.
func ParseTime(text string) (float64, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == ':' || r == '.'
	})
	if len(parts) != 3 || strings.Count(text, ":") != 1 || strings.Count(text, ".") != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
		}
		vals[i] = int(v)
	}

	return float64(vals[0])*60 + float64(vals[1]) + float64(vals[2])/1000, nil
}

// FormatTime renders seconds as "mm:ss.mmm". Negative input renders as zero.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// NewRegion builds a region over a buffer of length samples. Bounds outside
// [0, length] are clamped and reported; a region shorter than one sample
// after clamping fails with ErrEmptyRegion.
func NewRegion(start, end, length int) (Region, Warnings, error) {
	var warns Warnings

	if start < 0 {
		warns.Clamp(FieldRegionStart, float64(start), 0)
		start = 0
	}
	if end > length {
		warns.Clamp(FieldRegionEnd, float64(end), float64(length))
		end = length
	}
	if end-start < 1 {
		return Region{}, warns, fmt.Errorf("%w: start=%d end=%d", ErrEmptyRegion, start, end)
	}

	return Region{Start: start, End: end}, warns, nil
}

// RegionFromSeconds builds a region of b from a time range in seconds.
func RegionFromSeconds(b *Buffer, start, end float64) (Region, Warnings, error) {
	return NewRegion(ToSamples(start, b.SampleRate), ToSamples(end, b.SampleRate), b.Len())
}

// RegionFromText builds a region of b from two "mm:ss.mmm" strings.
func RegionFromText(b *Buffer, start, end string) (Region, Warnings, error) {
	s, err := ParseTime(start)
	if err != nil {
		return Region{}, nil, fmt.Errorf("region start: %w", err)
	}
	e, err := ParseTime(end)
	if err != nil {
		return Region{}, nil, fmt.Errorf("region end: %w", err)
	}
	return RegionFromSeconds(b, s, e)
}

// DurationToSamples converts a user-supplied duration to samples. Negative or
// NaN durations become 0 and are recorded in warns under field. Durations too
// long to count, +Inf included, saturate at math.MaxInt so the caller's own
// upper clamp applies.
func DurationToSamples(warns *Warnings, field string, seconds float32, sampleRate int) int {
	if seconds < 0 || math.IsNaN(float64(seconds)) {
		warns.Clamp(field, float64(seconds), 0)
		return 0
	}
	return ToSamples(float64(seconds), sampleRate)
}
