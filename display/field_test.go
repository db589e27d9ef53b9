package display

import (
	"math"
	"testing"
)

func TestFieldSpecWidth(t *testing.T) {
	tests := []struct {
		spec FieldSpec
		want int
	}{
		{FieldSpec{IntDigits: 4, DecDigits: 1}, 6},
		{FieldSpec{IntDigits: 2, DecDigits: 2}, 5},
		{FieldSpec{IntDigits: 1, DecDigits: 0}, 2},
	}

	for _, tt := range tests {
		if got := tt.spec.Width(); got != tt.want {
			t.Errorf("Width(%+v) = %d, want %d", tt.spec, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		number float64
		spec   FieldSpec
		want   string
	}{
		{
			name:   "padded integer and decimals",
			number: 123.45,
			spec:   FieldSpec{IntDigits: 4, DecDigits: 3},
			want:   " 123.450",
		},
		{
			name:   "short value left padded",
			number: 3.5,
			spec:   FieldSpec{IntDigits: 3, DecDigits: 1},
			want:   "  3.5",
		},
		{
			name:   "clamped to maximum",
			number: 9999.9,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 1},
			want:   "99.9",
		},
		{
			name:   "clamped to minimum keeps sign slot",
			number: -23.45,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 3},
			want:   "-9.450",
		},
		{
			name:   "decimal left zero padded",
			number: 5.04,
			spec:   FieldSpec{IntDigits: 1, DecDigits: 2},
			want:   "5.04",
		},
		{
			name:   "small remainder keeps width",
			number: 12.007,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 3},
			want:   "12.007",
		},
		{
			name:   "rounding carry increments integer",
			number: 0.996,
			spec:   FieldSpec{IntDigits: 1, DecDigits: 2},
			want:   "1.00",
		},
		{
			name:   "carry re-applies maximum clamp",
			number: 9.996,
			spec:   FieldSpec{IntDigits: 1, DecDigits: 2},
			want:   "9.00",
		},
		{
			name:   "negative carry moves away from zero",
			number: -0.996,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 2},
			want:   "-1.00",
		},
		{
			name:   "negative carry re-applies minimum clamp",
			number: -0.996,
			spec:   FieldSpec{IntDigits: 1, DecDigits: 2},
			want:   "0.00",
		},
		{
			name:   "zero decimal digits keeps trailing point",
			number: 7.4,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 0},
			want:   " 7.",
		},
		{
			name:   "zero decimal digits rounds into integer",
			number: 7.6,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 0},
			want:   " 8.",
		},
		{
			name:   "zero",
			number: 0,
			spec:   FieldSpec{IntDigits: 2, DecDigits: 2},
			want:   " 0.00",
		},
		{
			name:   "single digit minimum is zero",
			number: -5.5,
			spec:   FieldSpec{IntDigits: 1, DecDigits: 1},
			want:   "0.5",
		},
		{
			name:   "NaN renders as zero",
			number: math.NaN(),
			spec:   FieldSpec{IntDigits: 2, DecDigits: 1},
			want:   " 0.0",
		},
		{
			name:   "positive infinity clamps to maximum",
			number: math.Inf(1),
			spec:   FieldSpec{IntDigits: 3, DecDigits: 1},
			want:   "999.0",
		},
		{
			name:   "negative infinity clamps to minimum",
			number: math.Inf(-1),
			spec:   FieldSpec{IntDigits: 3, DecDigits: 1},
			want:   "-99.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Format(tt.number)
			if got != tt.want {
				t.Errorf("Format(%v, %+v) = %q, want %q", tt.number, tt.spec, got, tt.want)
			}
			if len(got) != tt.spec.Width() {
				t.Errorf("Format(%v, %+v) length = %d, want %d", tt.number, tt.spec, len(got), tt.spec.Width())
			}
		})
	}
}

// TestFormatWidthInvariant checks the fixed-width guarantee across a grid
// of specs and awkward values, including ones that clamp and carry.
func TestFormatWidthInvariant(t *testing.T) {
	values := []float64{
		0, 0.4, 0.45, 0.996, 0.9999, 1, 1.5, 9.99, 10.01, 99.994,
		123.45, 9999.9, 123456.789, -0.4, -0.996, -1.5, -23.45, -99999,
		math.NaN(), math.Inf(1), math.Inf(-1),
	}

	for intDigits := 1; intDigits <= 5; intDigits++ {
		for decDigits := 0; decDigits <= 3; decDigits++ {
			spec := FieldSpec{IntDigits: intDigits, DecDigits: decDigits}
			for _, v := range values {
				got := spec.Format(v)
				if len(got) != spec.Width() {
					t.Errorf("Format(%v, %+v) = %q, length %d, want %d",
						v, spec, got, len(got), spec.Width())
				}
			}
		}
	}
}
