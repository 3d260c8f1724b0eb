// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"errors"
	"fmt"

	"github.com/ik5/audedit/audio"
)

// Frame is the detection result for one analysis window of a buffer.
type Frame struct {
	// Start is the first sample of the window.
	Start  int
	Time   float64
	Pitch  Detected
	Voiced bool
}

// AnalyzeBuffer runs d over b in windows of windowSize samples every hop
// samples. Multichannel input is averaged to mono first. Unvoiced frames are
// kept with Voiced false so the series stays evenly spaced.
func (d *Detector) AnalyzeBuffer(b *audio.Buffer, windowSize, hop int) ([]Frame, error) {
	switch {
	case b == nil:
		return nil, ErrNilBuffer
	case windowSize < 2:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, windowSize)
	case hop < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidHop, hop)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	det := *d
	det.SampleRate = b.SampleRate

	samples := audio.Downmix(b).Channels[0]
	var frames []Frame

	for start := 0; start+windowSize <= len(samples); start += hop {
		frame := Frame{
			Start: start,
			Time:  audio.ToSeconds(start, b.SampleRate),
		}

		p, err := det.Detect(samples[start : start+windowSize])
		switch {
		case err == nil:
			frame.Pitch = p
			frame.Voiced = true
		case !errors.Is(err, ErrNoPitchDetected):
			return nil, err
		}
		frames = append(frames, frame)
	}

	audio.Logger().Debug("analyzed buffer",
		"frames", len(frames),
		"window", windowSize,
		"hop", hop,
	)
	return frames, nil
}
