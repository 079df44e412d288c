// Package mask lays digits out over a display mask such as "(dd) ddddd-dddd".
package mask

import "strings"

// Slot marks a position in a mask that takes one digit
const Slot = 'd'

// Format places digits into the mask's slots, copying literal characters
// between them. Output stops as soon as the digits run out, so a partial
// value never shows trailing literals.
func Format(mask, digits string) string {
	var b strings.Builder
	used := 0
	for _, r := range mask {
		if used == len(digits) {
			break
		}
		if r == Slot {
			b.WriteByte(digits[used])
			used++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaxDigits returns how many digits the mask can hold
func MaxDigits(mask string) int {
	return strings.Count(mask, string(Slot))
}

// Accept appends key to digits when it is a single digit and there is room.
// It reports whether digits changed.
func Accept(mask, digits, key string) (string, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return digits, false
	}
	if len(digits) >= MaxDigits(mask) {
		return digits, false
	}
	return digits + key, true
}

// Backspace drops the last digit
func Backspace(digits string) string {
	if digits == "" {
		return digits
	}
	return digits[:len(digits)-1]
}
