// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"
	"math"
	"strings"
)

// Note is a pitch class of the 12-tone chromatic scale, starting at C.
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// DefaultReferenceA4 is concert pitch in Hz.
const DefaultReferenceA4 = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// enharmonic spellings accepted by ParseNote
var altNames = map[string]Note{
	"Db": CSharp,
	"Eb": DSharp,
	"Gb": FSharp,
	"Ab": GSharp,
	"Bb": ASharp,
	"Cb": B,
	"Fb": E,
	"E#": F,
	"B#": C,
}

func (n Note) String() string {
	if n < C || n > B {
		return fmt.Sprintf("Note(%d)", int(n))
	}
	return noteNames[n]
}

// ParseNote reads a key or note name such as "C", "F#", "Bb" or "Am".
// A trailing "m" or "min" marks a minor key and does not change the tonic.
func ParseNote(name string) (Note, error) {
	s := strings.TrimSpace(name)
	s = strings.TrimSuffix(s, "min")
	if len(s) > 1 {
		s = strings.TrimSuffix(s, "m")
	}
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	s = strings.ToUpper(s[:1]) + s[1:]

	for i, n := range noteNames {
		if n == s {
			return Note(i), nil
		}
	}
	if n, ok := altNames[s]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Detected is one analysis result.
type Detected struct {
	FrequencyHz float32
	Note        Note
	Octave      int32
	Cents       int32
}

func (d Detected) String() string {
	return fmt.Sprintf("%s%d %+d cents (%.2f Hz)", d.Note, d.Octave, d.Cents, d.FrequencyHz)
}

// NoteFromFrequency maps freq to the nearest equal-tempered note relative to
// a4. Octaves are clamped to [0, 9].
func NoteFromFrequency(freq, a4 float64) Detected {
	semitones := 12 * math.Log2(freq/a4)
	rounded := math.Round(semitones)

	index := int(rounded) + 9
	note := ((index % 12) + 12) % 12
	octave := int(math.Floor(float64(index)/12)) + 4

	return Detected{
		FrequencyHz: float32(freq),
		Note:        Note(note),
		Octave:      int32(min(max(octave, 0), 9)),
		Cents:       int32(math.Round((semitones - rounded) * 100)),
	}
}

// Frequency returns the equal-tempered frequency of note in octave.
func Frequency(note Note, octave int, a4 float64) float64 {
	semitones := float64(int(note)-int(A)) + float64(octave-4)*12
	return a4 * math.Pow(2, semitones/12)
}
