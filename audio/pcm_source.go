// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/utils"
)

// PCMReader is the part of the go-audio decoders (wav, aiff) that
// PCMSource needs.
type PCMReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// PCMSource adapts a go-audio decoder to Source, scaling integer samples of
// bitDepth bits to [-1, 1).
type PCMSource struct {
	dec        PCMReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	closer     io.Closer
}

// NewPCMSource wraps dec. closer, when not nil, is closed with the source.
func NewPCMSource(dec PCMReader, bitDepth int, closer io.Closer) (*PCMSource, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrNoChannels
	}
	if format.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	return &PCMSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		closer:     closer,
	}, nil
}

func (s *PCMSource) SampleRate() int { return s.sampleRate }
func (s *PCMSource) Channels() int   { return s.channels }

func (s *PCMSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *PCMSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = utils.IntToFloat32(s.intBuf.Data[i], s.bitDepth)
	}

	// A short read means the decoder hit the end of the data chunk.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}
