// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Conform converts b to sampleRate with a high-quality polyphase resampler.
// Unlike ChangeRate this keeps pitch and duration: only the sample grid
// changes. The result has ceil(len*sampleRate/b.SampleRate) samples.
func Conform(b *Buffer, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if b.SampleRate == sampleRate {
		return b.Clone(), nil
	}

	want := int(math.Ceil(float64(b.Len()) * float64(sampleRate) / float64(b.SampleRate)))
	out := NewBuffer(sampleRate, b.NumChannels(), want)

	for ch, data := range b.Channels {
		r, err := resampling.New(&resampling.Config{
			InputRate:  float64(b.SampleRate),
			OutputRate: float64(sampleRate),
			Channels:   1,
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler: %w", err)
		}

		input := make([]float64, len(data))
		for i, s := range data {
			input[i] = float64(s)
		}

		processed, err := r.Process(input)
		if err != nil {
			return nil, fmt.Errorf("resample error: %w", err)
		}
		tail, err := r.Flush()
		if err != nil {
			return nil, fmt.Errorf("resample flush: %w", err)
		}
		processed = append(processed, tail...)

		dst := out.Channels[ch]
		for i := range min(len(dst), len(processed)) {
			dst[i] = float32(processed[i])
		}
	}

	Logger().Debug("conformed sample rate",
		"from", b.SampleRate,
		"to", sampleRate,
		"samples", want,
	)
	return out, nil
}
