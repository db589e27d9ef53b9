package format

import "strings"

// PadLeft right-justifies s in a field of width characters, padding with
// spaces on the left. Strings already at or beyond width are returned as-is.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// PadRight left-justifies s in a field of width characters, padding with
// spaces on the right. Strings already at or beyond width are returned as-is.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Center centers s in a field of width characters. When the padding does not
// divide evenly the extra space goes on the right. Strings already at or
// beyond width are returned as-is.
func Center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Truncate truncates a string to maxLen characters.
// Returns the full string if it's shorter than maxLen.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
