// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"

	"github.com/ik5/audedit/audio"
)

// Track is one input to Mix. Fades are in seconds.
type Track struct {
	Buffer         *audio.Buffer
	Gain           float32
	FadeInSeconds  float32
	FadeOutSeconds float32
}

// NewTrack returns a track at unity gain without fades.
func NewTrack(b *audio.Buffer) Track {
	return Track{Buffer: b, Gain: 1}
}

// Settings controls how adjacent tracks meet.
type Settings struct {
	GapSeconds       float32
	CrossfadeSeconds float32
	Normalize        bool
}

// MaxLength is the longest mix, in samples per channel, that Mix will build.
const MaxLength = math.MaxInt32

// Mix places tracks in order into a new buffer.
//
// The output has as many channels as the widest track and
// sum(len) + (n-1)*(gap-crossfade) samples, but never fewer than the longest
// track. The crossfade is clamped to the shorter of every adjacent pair.
func Mix(tracks []Track, s Settings) (*audio.Buffer, audio.Warnings, error) {
	if len(tracks) == 0 {
		return nil, nil, ErrZeroTracks
	}

	buffers, err := conformTracks(tracks)
	if err != nil {
		return nil, nil, err
	}

	var warns audio.Warnings
	rate := buffers[0].SampleRate

	gap := audio.DurationToSamples(&warns, audio.FieldGap, s.GapSeconds, rate)
	crossfade := audio.DurationToSamples(&warns, audio.FieldCrossfade, s.CrossfadeSeconds, rate)
	if len(buffers) == 1 {
		gap, crossfade = 0, 0
	}
	if gap > MaxLength {
		return nil, warns, fmt.Errorf("%w: gap of %g s", ErrOutputTooLarge, s.GapSeconds)
	}
	if limit := crossfadeLimit(buffers); crossfade > limit {
		warns.Clamp(audio.FieldCrossfade, float64(s.CrossfadeSeconds), audio.ToSeconds(limit, rate))
		crossfade = limit
	}

	channels, length := layout(buffers, gap, crossfade)
	if length > MaxLength {
		return nil, warns, fmt.Errorf("%w: %d samples", ErrOutputTooLarge, length)
	}
	out := audio.NewBuffer(rate, channels, length)

	offset := 0
	for i, tr := range tracks {
		placed := shape(&warns, i, tr, buffers[i])
		if i > 0 {
			for _, data := range placed.Channels {
				audio.FadeIn(data, crossfade)
			}
		}

		for ch, dst := range out.Channels {
			src := placed.Channels[0]
			if ch < placed.NumChannels() {
				src = placed.Channels[ch]
			}
			dst = dst[offset:]
			for j, v := range src[:min(len(src), len(dst))] {
				dst[j] += v
			}
		}

		offset += placed.Len() + gap - crossfade
	}

	if s.Normalize {
		for _, data := range out.Channels {
			audio.NormalizeSlice(data)
		}
	}

	audio.Logger().Debug("mixed tracks",
		"tracks", len(tracks),
		"channels", channels,
		"samples", length,
		"gap", gap,
		"crossfade", crossfade,
	)
	return out, warns, nil
}

// conformTracks validates every track and resamples those whose rate differs
// from the first.
func conformTracks(tracks []Track) ([]*audio.Buffer, error) {
	buffers := make([]*audio.Buffer, len(tracks))
	for i, tr := range tracks {
		if tr.Buffer == nil {
			return nil, fmt.Errorf("track %d: %w", i, ErrNilTrack)
		}
		if err := tr.Buffer.Validate(); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		buffers[i] = tr.Buffer
	}

	rate := buffers[0].SampleRate
	for i, b := range buffers[1:] {
		if b.SampleRate == rate {
			continue
		}
		conformed, err := audio.Conform(b, rate)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i+1, err)
		}
		buffers[i+1] = conformed
	}
	return buffers, nil
}

// shape copies a track and applies its gain and fades. Envelope warnings are
// re-keyed to the track and reported in seconds.
func shape(warns *audio.Warnings, index int, tr Track, b *audio.Buffer) *audio.Buffer {
	env := audio.Envelope{
		Gain:    tr.Gain,
		FadeIn:  audio.DurationToSamples(warns, trackField(index, audio.FieldFadeIn), tr.FadeInSeconds, b.SampleRate),
		FadeOut: audio.DurationToSamples(warns, trackField(index, audio.FieldFadeOut), tr.FadeOutSeconds, b.SampleRate),
	}

	out, envWarns := env.Apply(b)
	for _, w := range envWarns {
		switch w.Field {
		case audio.FieldFadeIn:
			w.Requested = float64(tr.FadeInSeconds)
			w.Applied = audio.ToSeconds(int(w.Applied), b.SampleRate)
		case audio.FieldFadeOut:
			w.Requested = float64(tr.FadeOutSeconds)
			w.Applied = audio.ToSeconds(int(w.Applied), b.SampleRate)
		}
		w.Field = trackField(index, w.Field)
		warns.Merge(audio.Warnings{w})
	}
	return out
}

func layout(buffers []*audio.Buffer, gap, crossfade int) (channels, length int) {
	longest := 0
	for _, b := range buffers {
		channels = max(channels, b.NumChannels())
		longest = max(longest, b.Len())
		length += b.Len()
	}
	length += (len(buffers) - 1) * (gap - crossfade)
	return channels, max(length, longest)
}

// crossfadeLimit is the shortest track length, since every track belongs to
// an adjacent pair once there are two or more.
func crossfadeLimit(buffers []*audio.Buffer) int {
	limit := math.MaxInt
	if len(buffers) < 2 {
		return limit
	}
	for _, b := range buffers {
		limit = min(limit, b.Len())
	}
	return limit
}

func trackField(index int, field string) string {
	return fmt.Sprintf("track[%d].%s", index, field)
}
