// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"
	"math"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// Default WSOLA windows, in milliseconds.
const (
	DefaultSequenceMs = 82.0
	DefaultOverlapMs  = 10.0
	DefaultSearchMs   = 28.0
)

// Stretcher changes duration without changing pitch using WSOLA: the input
// is cut into overlapping segments, each placed where it best matches the
// tail of the previous one, and joined with raised-cosine crossfades.
//
// Segment positions are chosen on the mono mix and applied to every channel,
// so channels stay phase-aligned.
type Stretcher struct {
	sequenceLen int
	overlapLen  int
	searchLen   int
	stepOut     int

	fadeIn  []float32
	fadeOut []float32
}

// NewStretcher returns a stretcher with default windows for sampleRate.
func NewStretcher(sampleRate int) *Stretcher {
	return NewStretcherWithWindows(sampleRate, DefaultSequenceMs, DefaultOverlapMs, DefaultSearchMs)
}

// NewStretcherWithWindows sizes the segment, overlap and search windows
// explicitly. Sizes are floored to 32, 8 and 1 samples, and the overlap is
// kept below half the segment.
func NewStretcherWithWindows(sampleRate int, sequenceMs, overlapMs, searchMs float64) *Stretcher {
	toLen := func(ms float64) int {
		return int(math.Round(ms * 0.001 * float64(sampleRate)))
	}
	return newStretcher(toLen(sequenceMs), toLen(overlapMs), toLen(searchMs))
}

// Window floors, in samples.
const (
	minSequenceLen = 32
	minOverlapLen  = 8
	minSearchLen   = 1
)

// MinStretchLen is the shortest input the stretcher can time-stretch while
// keeping its pitch.
const MinStretchLen = 2 * minSequenceLen

func newStretcher(sequenceLen, overlapLen, searchLen int) *Stretcher {
	s := &Stretcher{
		sequenceLen: max(sequenceLen, minSequenceLen),
		overlapLen:  max(overlapLen, minOverlapLen),
		searchLen:   max(searchLen, minSearchLen),
	}
	s.overlapLen = min(s.overlapLen, s.sequenceLen/2)
	s.stepOut = s.sequenceLen - s.overlapLen

	s.fadeIn = make([]float32, s.overlapLen)
	s.fadeOut = make([]float32, s.overlapLen)
	for i := range s.overlapLen {
		t := float64(i) / float64(s.overlapLen-1)
		in := float32(0.5 - 0.5*math.Cos(math.Pi*t))
		s.fadeIn[i] = in
		s.fadeOut[i] = 1 - in
	}
	return s
}

// Stretch plays b at tempo (2 = twice as fast) keeping its pitch. The result
// has ceil(len/tempo) samples.
func (s *Stretcher) Stretch(b *audio.Buffer, tempo float64) (*audio.Buffer, error) {
	if !(tempo > 0) || math.IsInf(tempo, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, tempo)
	}
	if tempo == 1 {
		return b.Clone(), nil
	}
	return s.StretchTo(b, int(math.Ceil(float64(b.Len())/tempo))), nil
}

// StretchTo returns b time-stretched to exactly target samples.
//
// Inputs shorter than two segments are stretched with proportionally smaller
// windows. Inputs shorter than MinStretchLen cannot overlap at all and are
// resampled to the target length instead, which shifts their pitch.
func (s *Stretcher) StretchTo(b *audio.Buffer, target int) *audio.Buffer {
	n := b.Len()
	if target == n {
		return b.Clone()
	}

	out := audio.NewBuffer(b.SampleRate, b.NumChannels(), target)
	if n == 0 || target == 0 {
		return out
	}

	if n < MinStretchLen {
		for ch, data := range b.Channels {
			resampleTo(data, out.Channels[ch])
		}
		return out
	}

	st := s.fit(n)
	starts := st.plan(audio.Downmix(b).Channels[0], target)
	for ch, data := range b.Channels {
		st.render(data, starts, out.Channels[ch])
	}
	return out
}

// fit returns s, or a copy with every window scaled down so that an input of
// n samples holds two segments.
func (s *Stretcher) fit(n int) *Stretcher {
	if n >= 2*s.sequenceLen {
		return s
	}
	scale := float64(n) / float64(2*s.sequenceLen)
	scaled := func(l int) int {
		return int(float64(l) * scale)
	}
	return newStretcher(scaled(s.sequenceLen), scaled(s.overlapLen), scaled(s.searchLen))
}

// plan picks the input start of every output segment.
func (s *Stretcher) plan(guide []float32, target int) []int {
	inStep := float64(s.stepOut) * float64(len(guide)) / float64(target)
	last := len(guide) - 1

	starts := []int{0}
	outLen := s.sequenceLen
	prev := 0
	nominal := inStep
	ref := make([]float32, s.overlapLen)

	for outLen < target {
		// The overlap of the previous segment, as it would naturally continue.
		refStart := prev + s.stepOut
		for i := range ref {
			ref[i] = sampleZero(guide, refStart+i)
		}

		predicted := min(int(math.Round(nominal)), last)
		prev = s.bestOverlap(ref, guide, predicted, last)
		starts = append(starts, prev)

		outLen += s.stepOut
		nominal += inStep
	}
	return starts
}

// bestOverlap searches around predicted for the candidate with the highest
// normalized cross-correlation against ref.
func (s *Stretcher) bestOverlap(ref, input []float32, predicted, last int) int {
	const tiny = 1e-12

	var refEnergy float64 = tiny
	for _, v := range ref {
		refEnergy += float64(v) * float64(v)
	}

	best := predicted
	bestScore := math.Inf(-1)

	for cand := max(predicted-s.searchLen, 0); cand <= min(predicted+s.searchLen, last); cand++ {
		var dot float64
		var candEnergy float64 = tiny
		for i, rv := range ref {
			cv := float64(sampleZero(input, cand+i))
			dot += float64(rv) * cv
			candEnergy += cv * cv
		}
		if score := dot / math.Sqrt(refEnergy*candEnergy); score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// render overlap-adds the planned segments of in into out.
func (s *Stretcher) render(in []float32, starts []int, out []float32) {
	buf := make([]float32, len(starts)*s.stepOut+s.sequenceLen)

	for i := range s.sequenceLen {
		buf[i] = sampleZero(in, starts[0]+i)
	}
	outLen := s.sequenceLen

	for _, start := range starts[1:] {
		outStart := outLen - s.overlapLen
		for i := range s.overlapLen {
			buf[outStart+i] = buf[outStart+i]*s.fadeOut[i] + sampleZero(in, start+i)*s.fadeIn[i]
		}
		for i := s.overlapLen; i < s.sequenceLen; i++ {
			buf[outStart+i] = sampleZero(in, start+i)
		}
		outLen = outStart + s.sequenceLen
	}

	copy(out, buf[:min(outLen, len(buf))])
}

// resampleTo fills dst by reading src at evenly spaced positions.
func resampleTo(src, dst []float32) {
	if len(dst) == 1 || len(src) == 1 {
		for i := range dst {
			dst[i] = src[0]
		}
		return
	}
	step := float64(len(src)-1) / float64(len(dst)-1)
	for i := range dst {
		dst[i] = utils.SampleAt(src, float64(i)*step)
	}
}

func sampleZero(x []float32, idx int) float32 {
	if idx < 0 || idx >= len(x) {
		return 0
	}
	return x[idx]
}
