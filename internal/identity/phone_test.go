package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare national", "9876543210", "+919876543210"},
		{"already canonical", "+919876543210", "+919876543210"},
		{"spaces and dashes", "+91 98765-43210", "+919876543210"},
		{"trunk zero", "09876543210", "+919876543210"},
		{"country code no plus", "919876543210", "+919876543210"},
		{"double zero prefix", "00919876543210", "+919876543210"},
		{"foreign number", "+14155552671", "+14155552671"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"no digits", "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanonicalPhone(tc.in))
		})
	}
}

func TestCanonicalPhoneIdempotent(t *testing.T) {
	inputs := []string{
		"9876543210", "+919876543210", "09876543210",
		"919876543210", "0091 98765 43210", "+1 (415) 555-2671",
	}
	for _, in := range inputs {
		once := CanonicalPhone(in)
		assert.Equal(t, once, CanonicalPhone(once), "input %q", in)
	}
}

func TestCanonicalPhoneDistinctNumbersStayDistinct(t *testing.T) {
	a := CanonicalPhone("9876543210")
	b := CanonicalPhone("9876543211")
	assert.NotEqual(t, a, b)
}
