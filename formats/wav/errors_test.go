// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

var allErrors = map[string]error{
	"ErrNotWavFile":              ErrNotWavFile,
	"ErrUnsupportedWavLayout":    ErrUnsupportedWavLayout,
	"ErrOnlyPCM16bitSupported":   ErrOnlyPCM16bitSupported,
	"ErrUnsupportedWavChunks":    ErrUnsupportedWavChunks,
	"ErrUnsupportedChannelCount": ErrUnsupportedChannelCount,
	"ErrDataTooLarge":            ErrDataTooLarge,
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	for name, err := range allErrors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("encode: %w", err)
			if !errors.Is(wrapped, err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", name)
			}
			if errors.Is(errors.New("some other error"), err) {
				t.Errorf("errors.Is(otherErr, %s) = true, want false", name)
			}
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	messages := make(map[string]string)
	for name, err := range allErrors {
		msg := err.Error()
		if msg == "" {
			t.Errorf("%s has an empty message", name)
		}
		if existing, found := messages[msg]; found {
			t.Errorf("%s has same message as %s: %q", name, existing, msg)
		}
		messages[msg] = name
	}
}
