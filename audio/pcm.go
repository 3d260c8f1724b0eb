// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/utils"
)

// AsIntBuffer converts the buffer to interleaved 16-bit integer PCM in the
// go-audio representation, using the same conversion as the WAV encoder.
func (b *Buffer) AsIntBuffer() *goaudio.IntBuffer {
	interleaved := b.Interleave()
	data := make([]int, len(interleaved))
	for i, s := range interleaved {
		data[i] = int(utils.Float32ToInt16(s))
	}
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: b.NumChannels(),
			SampleRate:  b.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
}

// FromIntBuffer converts go-audio integer PCM into a Buffer.
// A zero SourceBitDepth is treated as 16-bit.
func FromIntBuffer(ib *goaudio.IntBuffer) (*Buffer, error) {
	if ib == nil || ib.Format == nil {
		return nil, fmt.Errorf("%w: missing PCM format", ErrNoChannels)
	}
	channels := ib.Format.NumChannels
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bitDepth := ib.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	frames := len(ib.Data) / channels
	b := NewBuffer(ib.Format.SampleRate, channels, frames)
	for i := range frames {
		for ch := range channels {
			b.Channels[ch][i] = utils.IntToFloat32(ib.Data[i*channels+ch], bitDepth)
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
