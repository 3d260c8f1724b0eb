// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/aiff"

	"github.com/ik5/audedit/audio"
)

// Decoder reads 16-bit PCM AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	src, err := audio.NewPCMSource(dec, int(dec.BitDepth), closer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}
	return src, nil
}

// DecodeBuffer reads a whole AIFF file into memory.
func DecodeBuffer(r io.Reader) (*audio.Buffer, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}
	return audio.FromIntBuffer(pcm)
}

// Info describes an AIFF file without decoding its samples.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe reads the stream format and duration of an AIFF file.
func Probe(r io.Reader) (Info, error) {
	dec, err := open(r)
	if err != nil {
		return Info{}, err
	}
	d, err := dec.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("aiff duration: %w", err)
	}
	return Info{
		SampleRate: dec.SampleRate,
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   d,
	}, nil
}

func open(r io.Reader) (*aiff.Decoder, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if dec.Format() == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	return dec, nil
}
