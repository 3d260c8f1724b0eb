// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"time"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
)

// Decoder reads 16-bit PCM WAV files, including files with extra chunks
// before the data chunk.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}
	return audio.NewPCMSource(dec, int(dec.BitDepth), closer)
}

// DecodeBuffer reads a whole WAV file into memory.
func DecodeBuffer(r io.Reader) (*audio.Buffer, error) {
	src, err := Decoder{}.Decode(r)
	if err != nil {
		return nil, err
	}
	return audio.Collect(src)
}

// Info describes a WAV file without decoding its samples.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe reads the stream format and duration of a WAV file.
func Probe(r io.Reader) (Info, error) {
	dec, err := open(r)
	if err != nil {
		return Info{}, err
	}
	d, err := dec.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("wav duration: %w", err)
	}
	return Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   d,
	}, nil
}

func open(r io.Reader) (*gowav.Decoder, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM || dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	return dec, nil
}
