// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audedit/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

type failingDecoder struct{}

func (failingDecoder) Decode(io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_KeyNormalization(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "aiff"}
	registry.Register("AIFF", decoder)

	for _, key := range []string{"aiff", ".aiff", ".AIFF", "Aiff"} {
		if got, ok := registry.Get(key); !ok || got != decoder {
			t.Errorf("Registry.Get(%q) = (%v, %v), want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("aiff", &mockDecoder{})
	registry.Register("broken", failingDecoder{})

	want := []string{"aiff", "broken", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Registry.Formats() = %v, want %v", got, want)
	}

	dec, _ := registry.Get("broken")
	if _, err := dec.Decode(nil); err == nil {
		t.Error("failingDecoder.Decode() error = nil, want error")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			registry.Register(string(rune('a'+id)), &mockDecoder{})
			registry.Get("a")
		}(i)
	}
	wg.Wait()

	if got := len(registry.Formats()); got != 10 {
		t.Errorf("len(Formats()) = %d, want 10", got)
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *Buffer
		want error
	}{
		{"valid", &Buffer{SampleRate: 8000, Channels: [][]float32{{1, 2}, {3, 4}}}, nil},
		{"empty channels ok", &Buffer{SampleRate: 8000, Channels: [][]float32{{}}}, nil},
		{"zero rate", &Buffer{SampleRate: 0, Channels: [][]float32{{1}}}, ErrInvalidSampleRate},
		{"no channels", &Buffer{SampleRate: 8000}, ErrNoChannels},
		{"ragged", &Buffer{SampleRate: 8000, Channels: [][]float32{{1, 2}, {3}}}, ErrChannelLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.buf.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuffer_CloneIsDeep(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(100, []float32{1, 2, 3})
	c := b.Clone()
	c.Channels[0][0] = 9

	if b.Channels[0][0] != 1 {
		t.Error("Clone() shares sample storage with the original")
	}
}

func TestBuffer_InterleaveRoundTrip(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(100, []float32{1, 2, 3}, []float32{-1, -2, -3})

	inter := b.Interleave()
	want := []float32{1, -1, 2, -2, 3, -3}
	if !slices.Equal(inter, want) {
		t.Fatalf("Interleave() = %v, want %v", inter, want)
	}

	back, err := Deinterleave(100, 2, append(inter, 7)) // trailing partial frame dropped
	if err != nil {
		t.Fatal(err)
	}
	for ch := range b.Channels {
		if !slices.Equal(back.Channels[ch], b.Channels[ch]) {
			t.Errorf("channel %d = %v, want %v", ch, back.Channels[ch], b.Channels[ch])
		}
	}
}

func TestBuffer_Duration(t *testing.T) {
	t.Parallel()

	b := NewBuffer(8000, 1, 4000)
	if got := b.Duration(); got != 0.5 {
		t.Errorf("Duration() = %v, want 0.5", got)
	}
}

func TestBufferSource_Collect(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(8000, audiotest.Ramp(10000), audiotest.Constant(10000, 0.25))

	got, err := Collect(NewBufferSource(b))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got.SampleRate != 8000 || got.NumChannels() != 2 || got.Len() != 10000 {
		t.Fatalf("Collect() shape = %d Hz %dx%d", got.SampleRate, got.NumChannels(), got.Len())
	}
	for ch := range b.Channels {
		if !slices.Equal(got.Channels[ch], b.Channels[ch]) {
			t.Errorf("channel %d differs after round trip", ch)
		}
	}
}

func TestIntBufferRoundTrip(t *testing.T) {
	t.Parallel()

	b, _ := FromChannels(22050, []float32{0, 0.5, -0.5, -1}, []float32{1, -1, 0.25, 0})

	ib := b.AsIntBuffer()
	if ib.Format.NumChannels != 2 || ib.Format.SampleRate != 22050 {
		t.Fatalf("AsIntBuffer() format = %+v", ib.Format)
	}
	wantInts := []int{0, 32767, 16383, -32768, -16384, 8191, -32768, 0}
	if !slices.Equal(ib.Data, wantInts) {
		t.Fatalf("AsIntBuffer().Data = %v, want %v", ib.Data, wantInts)
	}

	back, err := FromIntBuffer(ib)
	if err != nil {
		t.Fatal(err)
	}
	if back.Channels[0][2] != -0.5 || back.Channels[0][3] != -1 {
		t.Errorf("FromIntBuffer() channel 0 = %v", back.Channels[0])
	}
}

func TestFromIntBuffer_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := FromIntBuffer(nil); !errors.Is(err, ErrNoChannels) {
		t.Errorf("FromIntBuffer(nil) error = %v, want ErrNoChannels", err)
	}
}
