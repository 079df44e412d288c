package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		mask   string
		digits string
		want   string
	}{
		{"(dd) ddddd dddd", "", ""},
		{"(dd) ddddd dddd", "1", "(1"},
		{"(dd) ddddd dddd", "11", "(11"},
		{"(dd) ddddd dddd", "119", "(11) 9"},
		{"(dd) ddddd dddd", "11987654321", "(11) 98765 4321"},
		{"ddd.ddd.ddd-dd", "12345678901", "123.456.789-01"},
		{"ddd.ddd.ddd-dd", "1234", "123.4"},
		{"dd", "123", "12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.mask, tt.digits), "Format(%q, %q)", tt.mask, tt.digits)
	}
}

func TestMaxDigits(t *testing.T) {
	assert.Equal(t, 11, MaxDigits("(dd) ddddd dddd"))
	assert.Equal(t, 11, MaxDigits("ddd.ddd.ddd-dd"))
	assert.Equal(t, 0, MaxDigits("--"))
}

func TestAcceptAndBackspace(t *testing.T) {
	digits, ok := Accept("dd", "", "4")
	assert.True(t, ok)
	assert.Equal(t, "4", digits)

	_, ok = Accept("dd", digits, "x")
	assert.False(t, ok, "Non-digits are rejected")

	_, ok = Accept("dd", digits, "42")
	assert.False(t, ok, "Only single keys are accepted")

	digits, _ = Accept("dd", digits, "2")
	_, ok = Accept("dd", digits, "7")
	assert.False(t, ok, "Full mask rejects more digits")

	assert.Equal(t, "4", Backspace(digits))
	assert.Equal(t, "", Backspace(""))
}
