// SPDX-License-Identifier: EPL-2.0

package pitch

// WrapShift folds a semitone difference into [-6, 6], the shortest way round
// the chromatic circle.
func WrapShift(diff int) int {
	diff %= 12
	if diff > 6 {
		diff -= 12
	} else if diff < -6 {
		diff += 12
	}
	return diff
}

// KeyShift returns the semitone shift that moves music in original to
// target, wrapped into [-6, 6].
func KeyShift(original, target string) (int, error) {
	from, err := ParseNote(original)
	if err != nil {
		return 0, err
	}
	to, err := ParseNote(target)
	if err != nil {
		return 0, err
	}
	return WrapShift(int(to) - int(from)), nil
}
