// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/audiotest"
)

const testRate = 48000

func sineBuffer(t *testing.T, freq float64, n, channels int) *audio.Buffer {
	t.Helper()

	chans := make([][]float32, channels)
	for ch := range chans {
		chans[ch] = audiotest.Sine(testRate, n, freq, 0.8)
	}
	b, err := audio.FromChannels(testRate, chans...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// pitchAt estimates the pitch of a window taken from the middle of b.
func pitchAt(t *testing.T, b *audio.Buffer) float64 {
	t.Helper()

	mid := b.Len()/2 - 2048
	if mid < 0 {
		t.Fatalf("buffer of %d samples too short to analyse", b.Len())
	}
	return NewDetector(b.SampleRate).Estimate(b.Channels[0][mid : mid+4096])
}

func within(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= want*tolerance
}

func TestRender_Identity(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 4800, 2)
	for _, linked := range []bool{false, true} {
		spec := Identity()
		spec.Linked = linked

		out, warns, err := Render(b, spec, RenderOptions{})
		if err != nil {
			t.Fatalf("linked=%v: Render() error = %v", linked, err)
		}
		if len(warns) != 0 {
			t.Errorf("linked=%v: warnings = %v", linked, warns)
		}
		if out.Len() != b.Len() || out.NumChannels() != 2 {
			t.Fatalf("linked=%v: Render() = %d×%d, want 2×%d", linked, out.NumChannels(), out.Len(), b.Len())
		}
		for ch := range out.Channels {
			for i := range out.Channels[ch] {
				if math.Abs(float64(out.Channels[ch][i]-b.Channels[ch][i])) > 1e-6 {
					t.Fatalf("linked=%v: sample %d/%d differs", linked, ch, i)
				}
			}
		}
	}
}

func TestRender_Linked(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, testRate, 1)
	out, _, err := Render(b, Spec{Semitones: 12, Speed: 1, Linked: true}, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != testRate/2 {
		t.Errorf("Render() length = %d, want %d", out.Len(), testRate/2)
	}
	if out.SampleRate != testRate {
		t.Errorf("Render() rate = %d, want %d", out.SampleRate, testRate)
	}
	if got := pitchAt(t, out); !within(got, 880, 0.02) {
		t.Errorf("pitch = %v, want ≈880", got)
	}
}

func TestRender_DecoupledKeepsTempo(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, testRate, 2)
	out, _, err := Render(b, Spec{Semitones: 12, Speed: 1}, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != b.Len() || out.NumChannels() != 2 {
		t.Errorf("Render() = %d×%d, want 2×%d", out.NumChannels(), out.Len(), b.Len())
	}
	if got := pitchAt(t, out); !within(got, 880, 0.03) {
		t.Errorf("pitch = %v, want ≈880", got)
	}
}

func TestRender_DecoupledShortClip(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 4410, 1)
	out, warns, err := Render(b, Spec{Semitones: 12, Speed: 1}, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != b.Len() {
		t.Errorf("Render() length = %d, want %d", out.Len(), b.Len())
	}
	if len(warns) != 0 {
		t.Errorf("Render() warnings = %v", warns)
	}
	if got := pitchAt(t, out); !within(got, 880, 0.03) {
		t.Errorf("pitch = %v, want ≈880", got)
	}
}

func TestRender_DecoupledTooShortWarns(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 40, 1)
	out, warns, err := Render(b, Spec{Semitones: 12, Speed: 1}, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 40 {
		t.Errorf("Render() length = %d, want 40", out.Len())
	}
	if !warns.Has(audio.FieldSemitones) {
		t.Errorf("Render() warnings = %v, want semitones dropped", warns)
	}
}

func TestRender_DecoupledSpeedKeepsPitch(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, testRate, 1)

	for _, speed := range []float32{0.5, 2} {
		out, _, err := Render(b, Spec{Speed: speed}, RenderOptions{})
		if err != nil {
			t.Fatal(err)
		}
		want := int(math.Ceil(float64(b.Len()) / float64(speed)))
		if out.Len() != want {
			t.Errorf("speed %v: length = %d, want %d", speed, out.Len(), want)
		}
		if got := pitchAt(t, out); !within(got, 440, 0.03) {
			t.Errorf("speed %v: pitch = %v, want ≈440", speed, got)
		}
	}
}

func TestRender_Options(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 4800, 2)
	b.Channels[1] = audiotest.Constant(4800, 0.5)

	out, warns, err := Render(b, Identity(), RenderOptions{FadeInSeconds: 0.01, FadeOutSeconds: -1, Mono: true})
	if err != nil {
		t.Fatal(err)
	}
	if out.NumChannels() != 1 {
		t.Errorf("Render() channels = %d, want 1", out.NumChannels())
	}
	if out.Channels[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 after fade-in", out.Channels[0][0])
	}
	if !warns.Has(audio.FieldFadeOut) {
		t.Errorf("warnings = %v, want fadeOut clamp", warns)
	}
}

func TestRender_ClampsSpec(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 4800, 1)
	out, warns, err := Render(b, Spec{Semitones: 48, Speed: 1, Linked: true}, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !warns.Has(audio.FieldSemitones) {
		t.Errorf("warnings = %v, want semitones clamp", warns)
	}
	// clamped to +24: four times faster
	if out.Len() != 1200 {
		t.Errorf("Render() length = %d, want 1200", out.Len())
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 100, 1)

	if _, _, err := Render(nil, Identity(), RenderOptions{}); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("nil buffer error = %v", err)
	}
	if _, _, err := Render(b, Spec{}, RenderOptions{}); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("zero speed error = %v", err)
	}
	bad := &audio.Buffer{SampleRate: 8000, Channels: [][]float32{{1}, {1, 2}}}
	if _, _, err := Render(bad, Identity(), RenderOptions{}); !errors.Is(err, audio.ErrChannelLengthMismatch) {
		t.Errorf("invalid buffer error = %v", err)
	}
}

func TestStretcher_Length(t *testing.T) {
	t.Parallel()

	s := NewStretcher(testRate)
	b := sineBuffer(t, 440, 20000, 2)

	for _, tempo := range []float64{0.3, 0.75, 1, 1.25, 3} {
		out, err := s.Stretch(b, tempo)
		if err != nil {
			t.Fatal(err)
		}
		want := int(math.Ceil(20000 / tempo))
		if out.Len() != want || out.NumChannels() != 2 {
			t.Errorf("Stretch(%v) = %d×%d, want 2×%d", tempo, out.NumChannels(), out.Len(), want)
		}
	}
}

func TestStretcher_ShortInput(t *testing.T) {
	t.Parallel()

	b, _ := audio.FromChannels(testRate, []float32{0, 1, 2, 3})
	out := NewStretcher(testRate).StretchTo(b, 7)

	if out.Len() != 7 {
		t.Fatalf("StretchTo() length = %d, want 7", out.Len())
	}
	if out.Channels[0][0] != 0 || out.Channels[0][6] != 3 {
		t.Errorf("StretchTo() = %v, want endpoints 0 and 3", out.Channels[0])
	}
}

func TestStretcher_Empty(t *testing.T) {
	t.Parallel()

	b := audio.NewBuffer(testRate, 2, 0)
	out, err := NewStretcher(testRate).Stretch(b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 || out.NumChannels() != 2 {
		t.Errorf("Stretch(empty) = %d×%d", out.NumChannels(), out.Len())
	}
}

func TestStretcher_InvalidTempo(t *testing.T) {
	t.Parallel()

	b := sineBuffer(t, 440, 100, 1)
	for _, tempo := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewStretcher(testRate).Stretch(b, tempo); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("Stretch(%v) error = %v, want %v", tempo, err, ErrInvalidSpeed)
		}
	}
}
