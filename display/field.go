package display

import (
	"math"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/lcd-pulse/internal/format"
)

// FieldSpec describes one fixed-width numeric field: how many digits the
// integer part occupies and how many the decimal part. IntDigits must be at
// least 1. The rendered field is always exactly Width() characters: the
// integer digits, a decimal point, and the decimal digits.
type FieldSpec struct {
	IntDigits int
	DecDigits int
}

// Width returns the exact length of every string produced by Format.
func (s FieldSpec) Width() int {
	return s.IntDigits + 1 + s.DecDigits
}

// Format renders number as a fixed-width field.
//
// The integer part is right-justified with spaces. Values whose magnitude
// exceeds the field's digit capacity are clamped: the maximum is
// 10^IntDigits - 1, and the minimum reserves one character for the minus
// sign, -(10^IntDigits - 1) / 10. The fractional remainder is rounded to
// DecDigits places; a rounding carry (remainder rounding up to 1.0)
// increments the integer part away from zero and re-applies the clamp.
// The decimal digits are zero-padded so the field never shrinks.
//
// NaN renders as zero. The receiving device has no notion of missing data;
// callers that know a reading is absent substitute a placeholder row before
// formatting (see the temperature builder).
func (s FieldSpec) Format(number float64) string {
	if math.IsNaN(number) {
		number = 0
	}

	max := pow10(s.IntDigits) - 1
	min := -(max / 10)

	// Split into a truncated integer part and a non-negative remainder.
	// Infinite input leaves no remainder (Inf - Inf is NaN); the clamp
	// below pins the integer part to the representable extreme.
	trunc := math.Trunc(number)
	frac := math.Abs(number - trunc)
	if math.IsNaN(frac) {
		frac = 0
	}

	var intPart int64
	switch {
	case number < float64(min):
		intPart = min
	case number > float64(max):
		intPart = max
	default:
		intPart = int64(trunc)
	}

	scale := pow10(s.DecDigits)
	dec := int64(math.Round(frac * float64(scale)))
	if dec >= scale {
		// The remainder rounded up to a full unit. Carry into the
		// integer part, away from zero, and clamp again.
		dec = 0
		if number < 0 {
			intPart--
		} else {
			intPart++
		}
		if intPart > max {
			intPart = max
		}
		if intPart < min {
			intPart = min
		}
	}

	intText := format.PadLeft(strconv.FormatInt(intPart, 10), s.IntDigits)
	decText := zeroPad(strconv.FormatInt(dec, 10), s.DecDigits)

	return intText + "." + decText
}

// zeroPad left-pads the scaled decimal text with zeros to exactly width
// characters, so a remainder of 0.04 at two places renders "04" and the
// field keeps its fixed width.
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat("0", width-len(s)) + s
}

// pow10 returns 10^n as an int64. Field specs are display-sized (a 16
// character row bounds them well below overflow).
func pow10(n int) int64 {
	result := int64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
