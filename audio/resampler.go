// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audedit/utils"
)

// Resampler streams src at a different rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
//
// Output frame j is read at source position j*num/den, so a source of n
// frames yields ceil(n*den/num) frames.
type Resampler struct {
	src      Source
	outRate  int
	num, den float64
	channels int

	// Four-frame window for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	base     int // source index of frames[1]
	outIndex int
	primed   bool
	done     bool

	srcBuf []float32
	eof    bool

	// One-pole low-pass used when downsampling.
	filterState []float32
	useFilter   bool
	filterAlpha float32
}

// NewResampler converts src to dstRate. A simple low-pass filter is applied
// when downsampling.
func NewResampler(src Source, dstRate int) *Resampler {
	r := newResampler(src, dstRate, float64(src.SampleRate()), float64(dstRate))
	if src.SampleRate() > dstRate {
		r.useFilter = true
		r.filterAlpha = 0.5
	}
	return r
}

// NewRateResampler plays src back at rate (2 = twice as fast, one octave up)
// while keeping its nominal sample rate.
func NewRateResampler(src Source, rate float64) *Resampler {
	return newResampler(src, src.SampleRate(), rate, 1)
}

func newResampler(src Source, outRate int, num, den float64) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:         src,
		outRate:     outRate,
		num:         num,
		den:         den,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.outRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads the next source frame into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	if err == io.EOF || (err == nil && n == 0) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.srcBuf)
	if r.useFilter {
		for c := range r.channels {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	// Seed the filter with the first frame to avoid a warm-up transient.
	useFilter := r.useFilter
	r.useFilter = false
	ok, err := r.readFrame(r.frames[1])
	r.useFilter = useFilter
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return io.EOF
	}
	copy(r.filterState, r.frames[1])
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		if r.hasFrame[i], err = r.readFrame(r.frames[i]); err != nil {
			return err
		}
	}
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	r.frames[3] = first
	copy(r.hasFrame[:], r.hasFrame[1:])
	r.base++

	var err error
	r.hasFrame[3], err = r.readFrame(r.frames[3])
	return err
}

// ReadSamples produces resampled interleaved samples.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		pos := float64(r.outIndex) * r.num / r.den
		for pos-float64(r.base) >= 1 && r.hasFrame[1] {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			r.done = true
			return written * r.channels, io.EOF
		}

		alpha := float32(pos - math.Floor(pos))
		for c := range r.channels {
			y1 := r.frames[1][c]
			y0 := r.frames[0][c]
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.outIndex++
	}

	return written * r.channels, nil
}

// ChangeRate returns b played back at rate, keeping its sample rate.
// The result has ceil(len/rate) samples per channel.
func ChangeRate(b *Buffer, rate float64) (*Buffer, error) {
	if rate == 1 {
		return b.Clone(), nil
	}
	if b.Len() == 0 {
		return NewBuffer(b.SampleRate, b.NumChannels(), 0), nil
	}
	return Collect(NewRateResampler(NewBufferSource(b), rate))
}
