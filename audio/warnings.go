// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// Parameter names reported in warnings.
const (
	FieldRegionStart = "region.start"
	FieldRegionEnd   = "region.end"
	FieldFadeIn      = "fadeIn"
	FieldFadeOut     = "fadeOut"
	FieldGain        = "gain"
	FieldGap         = "gap"
	FieldCrossfade   = "crossfade"
	FieldSemitones   = "semitones"
	FieldCents       = "cents"
	FieldSpeed       = "speed"
)

// Warning records a parameter that was clamped instead of rejected.
type Warning struct {
	Field     string
	Requested float64
	Applied   float64
}

func (w Warning) String() string {
	return fmt.Sprintf("%s clamped from %g to %g", w.Field, w.Requested, w.Applied)
}

// Warnings is the list of clamps applied by one operation.
type Warnings []Warning

// Clamp records a clamp and logs it.
func (ws *Warnings) Clamp(field string, requested, applied float64) {
	*ws = append(*ws, Warning{Field: field, Requested: requested, Applied: applied})
	Logger().Warn("parameter clamped",
		"field", field,
		"requested", requested,
		"applied", applied,
	)
}

// Merge appends other to ws without logging again.
func (ws *Warnings) Merge(other Warnings) {
	*ws = append(*ws, other...)
}

// Has reports whether a warning for field was recorded.
func (ws Warnings) Has(field string) bool {
	for _, w := range ws {
		if w.Field == field {
			return true
		}
	}
	return false
}

func (ws Warnings) String() string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
