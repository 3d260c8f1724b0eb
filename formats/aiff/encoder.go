// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audedit/audio"
)

// MimeType is the MIME type of the files Write produces.
const MimeType = "audio/aiff"

// Write encodes b as a 16-bit PCM AIFF file. The encoder patches its
// headers on completion, so w must be seekable. Samples use the same 16-bit
// conversion as the WAV encoder.
func Write(w io.WriteSeeker, b *audio.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}

	enc := aiff.NewEncoder(w, b.SampleRate, 16, b.NumChannels())
	if err := enc.Write(b.AsIntBuffer()); err != nil {
		return fmt.Errorf("aiff write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("aiff close: %w", err)
	}

	audio.Logger().Debug("encoded aiff",
		"rate", b.SampleRate,
		"channels", b.NumChannels(),
		"frames", b.Len(),
	)
	return nil
}
