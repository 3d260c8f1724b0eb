// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Buffer is decoded PCM audio held in memory: one float32 slice per channel,
// all of the same length, plus the sample rate.
//
// Operations in this module return new buffers. The only exception is
// Envelope.ApplyInPlace, which the caller may use when it is the buffer's
// sole owner.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a zero-filled buffer.
func NewBuffer(sampleRate, channels, length int) *Buffer {
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float32, length)
	}
	return b
}

// FromChannels wraps existing channel slices without copying them.
func FromChannels(sampleRate int, channels ...[]float32) (*Buffer, error) {
	b := &Buffer{SampleRate: sampleRate, Channels: channels}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, b.SampleRate)
	}
	if len(b.Channels) == 0 {
		return ErrNoChannels
	}
	n := len(b.Channels[0])
	for ch, data := range b.Channels[1:] {
		if len(data) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthMismatch, ch+1, len(data), n)
		}
	}
	return nil
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return ToSeconds(b.Len(), b.SampleRate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for ch, data := range b.Channels {
		out.Channels[ch] = append([]float32(nil), data...)
	}
	return out
}

// Slice copies the samples covered by r into a new buffer.
// r must come from NewRegion for a buffer of the same length.
func (b *Buffer) Slice(r Region) *Buffer {
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for ch, data := range b.Channels {
		out.Channels[ch] = append([]float32(nil), data[r.Start:r.End]...)
	}
	return out
}

// Interleave returns the samples frame by frame (ch0, ch1, ch0, ch1, ...).
func (b *Buffer) Interleave() []float32 {
	channels := len(b.Channels)
	n := b.Len()
	out := make([]float32, n*channels)
	for ch, data := range b.Channels {
		for i, s := range data {
			out[i*channels+ch] = s
		}
	}
	return out
}

// Deinterleave splits interleaved samples into a planar buffer.
// A trailing partial frame is dropped.
func Deinterleave(sampleRate, channels int, data []float32) (*Buffer, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	frames := len(data) / channels
	b := NewBuffer(sampleRate, channels, frames)
	for i := range frames {
		for ch := range channels {
			b.Channels[ch][i] = data[i*channels+ch]
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
