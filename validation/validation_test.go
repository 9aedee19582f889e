package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNationalCode(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"1234567890", true},
		{"0000000000", true},
		{"123", false},
		{"12345678901", false},
		{"12345abcde", false},
		{"", false},
		{" 1234567890", false},
		{"۱۲۳۴۵۶۷۸۹۰", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.valid, IsValidNationalCode(c.input), "input: %q", c.input)
	}
}

func TestIsValidName(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"Ali", true},
		{"Al", false},
		{"  Al  ", false},
		{"  Ali  ", true},
		{"", false},
		{"   ", false},
		{"علی", true},
		{"طاها یزدانیان", true},
		{"لی", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.valid, IsValidName(c.input), "input: %q", c.input)
	}
}
