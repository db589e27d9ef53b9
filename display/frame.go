// Package display builds the fixed-width text frames transmitted to the
// character LCD. A frame is two rows of exactly RowWidth characters; the
// device renders received bytes verbatim, so every formatting guarantee
// (field widths, clamping, placeholder substitution) lives here.
package display

import "gitlab.com/tinyland/lab/lcd-pulse/internal/format"

// RowWidth is the column count of the target display. Every frame row is
// exactly this long.
const RowWidth = 16

// Frame is one two-row payload for the display.
type Frame struct {
	Row1 string
	Row2 string
}

// NewFrame builds a Frame, padding or truncating each row to exactly
// RowWidth characters. Builders compose rows that already fit; the
// enforcement here keeps a misconfigured template from ever reaching the
// wire at the wrong width.
func NewFrame(row1, row2 string) Frame {
	return Frame{
		Row1: fitRow(row1),
		Row2: fitRow(row2),
	}
}

// Bytes serializes the frame for transmission: row1 immediately followed by
// row2, no separator, one byte per character. The receiver knows the
// 32-byte, two-row structure out of band.
func (f Frame) Bytes() []byte {
	buf := make([]byte, 0, 2*RowWidth)
	buf = append(buf, fitRow(f.Row1)...)
	buf = append(buf, fitRow(f.Row2)...)
	return buf
}

func fitRow(row string) string {
	return format.Truncate(format.PadRight(row, RowWidth), RowWidth)
}
