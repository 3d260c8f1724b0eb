// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// BufferSource streams a Buffer as interleaved samples, which lets an
// in-memory buffer feed the Source pipeline (MonoMixer, Resampler).
type BufferSource struct {
	buf *Buffer
	pos int // next frame
}

// NewBufferSource wraps b. The buffer is read, never modified.
func NewBufferSource(b *Buffer) *BufferSource {
	return &BufferSource{buf: b}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if channels == 0 {
		return 0, io.EOF
	}

	remaining := s.buf.Len() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for ch, data := range s.buf.Channels {
			dst[f*channels+ch] = data[s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Len() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// Collect drains src into a Buffer and closes it.
func Collect(src Source) (*Buffer, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	chunk := make([]float32, size)
	var data []float32

	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collect samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return Deinterleave(src.SampleRate(), channels, data)
}
