// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// MimeType tags encoded output for callers that offer it as a download.
const MimeType = "audio/wav"

// frames per write
const chunkFrames = 4096

// Encode returns b as a 16-bit PCM WAV file.
func Encode(b *audio.Buffer) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(HeaderSize + b.Len()*b.NumChannels()*2)

	if err := Write(&out, b); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Write encodes b to w as a 16-bit PCM WAV file with interleaved frames.
// Samples are clamped to [-1, 1] and scaled by 32768 when negative and
// 32767 otherwise, without rounding.
func Write(w io.Writer, b *audio.Buffer) error {
	header, err := NewPCM16Header(b.SampleRate, b.NumChannels(), b.Len())
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if err := writeHeader(w, header); err != nil {
		return err
	}

	channels := b.NumChannels()
	buf := make([]byte, min(b.Len(), chunkFrames)*channels*2)

	for start := 0; start < b.Len(); start += chunkFrames {
		end := min(start+chunkFrames, b.Len())
		chunk := buf[:(end-start)*channels*2]

		pos := 0
		for i := start; i < end; i++ {
			for _, data := range b.Channels {
				binary.LittleEndian.PutUint16(chunk[pos:], uint16(utils.Float32ToInt16(data[i])))
				pos += 2
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write PCM data: %w", err)
		}
	}

	audio.Logger().Debug("encoded wav",
		"sampleRate", b.SampleRate,
		"channels", channels,
		"frames", b.Len(),
		"bytes", HeaderSize+int(header.DataSize),
	)
	return nil
}

// WriteWAV16 writes already converted interleaved 16-bit PCM.
// len(samples) must be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d channels for %d samples", ErrUnsupportedChannelCount, channels, len(samples))
	}

	header, err := NewPCM16Header(sampleRate, channels, len(samples)/channels)
	if err != nil {
		return err
	}
	if err := writeHeader(w, header); err != nil {
		return err
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write PCM data: %w", err)
		}
	}

	return nil
}

func writeHeader(w io.Writer, h Header) error {
	header, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
