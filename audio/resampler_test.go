// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"slices"
	"testing"

	"github.com/ik5/audedit/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var samples []float32
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	return samples
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 1000)
	resampler := NewResampler(src, 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", resampler.SampleRate())
	}
	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.5)
	samples := drain(t, NewResampler(src, 8000), 64)

	if len(samples) != 100 {
		t.Fatalf("resampled %d samples, want 100", len(samples))
	}
	for i, s := range samples {
		if s != 0.5 {
			t.Fatalf("samples[%d] = %v, want 0.5", i, s)
		}
	}
}

func TestResampler_OutputCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"44.1k to 8k", 44100, 8000, 44100, 8000},
		{"44.1k to 16k", 44100, 16000, 44100, 16000},
		{"48k to 8k", 48000, 8000, 48000, 8000},
		{"8k to 48k", 8000, 48000, 8000, 48000},
		{"8k to 44.1k", 8000, 44100, 8000, 44100},
		{"short input", 44100, 8000, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 440)
			samples := drain(t, NewResampler(src, tt.dstRate), 1024)

			if len(samples) != tt.want {
				t.Errorf("resampled %d samples, want %d", len(samples), tt.want)
			}
			for i, s := range samples {
				if s < -1.5 || s > 1.5 {
					t.Fatalf("samples[%d] = %v, outside [-1.5, 1.5]", i, s)
				}
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})

	samples := drain(t, NewResampler(src, 8000), 20)
	if len(samples)%2 != 0 {
		t.Fatalf("got %d samples, not a whole number of stereo frames", len(samples))
	}
	for i := 0; i < len(samples); i += 2 {
		if math.Abs(float64(samples[i]-0.3)) > 1e-5 || math.Abs(float64(samples[i+1]-0.7)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.3, 0.7)", i/2, samples[i], samples[i+1])
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 100)
	_, err := NewResampler(src, 8000).ReadSamples(make([]float32, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want %v", err, ErrInvalidDstSize)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 0)
	n, err := NewResampler(src, 8000).ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestChangeRate_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate float64
		n    int
		want int
	}{
		{2, 1001, 501},
		{0.5, 100, 200},
		{1.5, 100, 67},
		{1, 37, 37},
		{2, 0, 0},
	}

	for _, tt := range tests {
		b, _ := FromChannels(8000, audiotest.Ramp(tt.n), audiotest.Ramp(tt.n))
		out, err := ChangeRate(b, tt.rate)
		if err != nil {
			t.Fatalf("ChangeRate(%v) error = %v", tt.rate, err)
		}
		if out.Len() != tt.want || out.NumChannels() != 2 {
			t.Errorf("ChangeRate(%v) on %d samples = %d×%d, want 2×%d",
				tt.rate, tt.n, out.NumChannels(), out.Len(), tt.want)
		}
		if out.SampleRate != 8000 {
			t.Errorf("ChangeRate() sample rate = %d, want 8000", out.SampleRate)
		}
	}
}

func TestChangeRate_IntegerRatePicksSourceSamples(t *testing.T) {
	t.Parallel()

	in := audiotest.Ramp(10)
	b, _ := FromChannels(8000, in)
	out, err := ChangeRate(b, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := []float32{in[0], in[2], in[4], in[6], in[8]}
	if !slices.Equal(out.Channels[0], want) {
		t.Errorf("ChangeRate(2) = %v, want %v", out.Channels[0], want)
	}
}

func TestChangeRate_Unity(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(8000, audiotest.Sine(8000, 64, 440, 1))
	out, err := ChangeRate(b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Channels[0], b.Channels[0]) {
		t.Error("ChangeRate(1) altered the samples")
	}
	out.Channels[0][0] = 99
	if b.Channels[0][0] == 99 {
		t.Error("ChangeRate(1) shares memory with its input")
	}
}

func TestConform(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(8000, audiotest.Sine(8000, 8000, 440, 0.5), audiotest.Sine(8000, 8000, 440, 0.5))
	out, err := Conform(b, 16000)
	if err != nil {
		t.Fatalf("Conform() error = %v", err)
	}
	if out.SampleRate != 16000 || out.Len() != 16000 || out.NumChannels() != 2 {
		t.Fatalf("Conform() = %d Hz, %d×%d; want 16000 Hz, 2×16000",
			out.SampleRate, out.NumChannels(), out.Len())
	}
	if peak := Peak(out.Channels[0][4000:12000]); peak < 0.25 || peak > 0.75 {
		t.Errorf("Conform() peak = %v, want near 0.5", peak)
	}
}

func TestConform_SameRate(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(8000, audiotest.Ramp(10))
	out, err := Conform(b, 8000)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Channels[0], b.Channels[0]) {
		t.Error("Conform() to the same rate altered the samples")
	}
}

func TestConform_InvalidRate(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(8000, audiotest.Ramp(10))
	if _, err := Conform(b, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Conform(0) error = %v, want %v", err, ErrInvalidSampleRate)
	}
}
