// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/wav"
)

// DefaultRegistry returns a registry with the WAV and AIFF decoders under
// their usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

// Load drains src into a buffer and closes it. When targetRate is positive
// and differs from the source rate, samples are resampled while they stream.
func Load(src audio.Source, targetRate int) (*audio.Buffer, error) {
	if targetRate > 0 && targetRate != src.SampleRate() {
		audio.Logger().Debug("resampling on load",
			"from", src.SampleRate(),
			"to", targetRate,
		)
		src = audio.NewResampler(src, targetRate)
	}

	b, err := audio.Collect(src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return b, nil
}

// LoadFile opens path, picks a decoder from reg by the file extension and
// loads the whole file. targetRate follows Load.
func LoadFile(reg *audio.Registry, path string, targetRate int) (*audio.Buffer, error) {
	dec, ok := reg.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Load(src, targetRate)
}

// Export writes b to w as a 16-bit PCM WAV file. When sampleRate is positive
// and differs from b's rate, b is conformed first.
func Export(w io.Writer, b *audio.Buffer, sampleRate int) error {
	if sampleRate > 0 && sampleRate != b.SampleRate {
		conformed, err := audio.Conform(b, sampleRate)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		b = conformed
	}
	return wav.Write(w, b)
}

// Encode is Export into memory. It also returns the MIME type of the data.
func Encode(b *audio.Buffer, sampleRate int) ([]byte, string, error) {
	if sampleRate > 0 && sampleRate != b.SampleRate {
		conformed, err := audio.Conform(b, sampleRate)
		if err != nil {
			return nil, "", fmt.Errorf("export: %w", err)
		}
		b = conformed
	}

	data, err := wav.Encode(b)
	if err != nil {
		return nil, "", err
	}
	return data, wav.MimeType, nil
}

// ExportFile creates path and exports b into it. Paths ending in .aif or
// .aiff get a 16-bit AIFF file, anything else a WAV file.
func ExportFile(path string, b *audio.Buffer, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		if sampleRate > 0 && sampleRate != b.SampleRate {
			if b, err = audio.Conform(b, sampleRate); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}
		return aiff.Write(f, b)
	}
	return Export(f, b, sampleRate)
}
