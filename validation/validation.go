// Package validation holds the pure field checks for voter input. Both
// functions are total: any string in, boolean out, no side effects.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var nationalCodePattern = regexp.MustCompile(`^[0-9]{10}$`)

// IsValidNationalCode reports whether s is exactly 10 decimal digits.
func IsValidNationalCode(s string) bool {
	return nationalCodePattern.MatchString(s)
}

// IsValidName reports whether s, trimmed, is longer than 2 characters.
// Length is counted in runes so Persian names are measured correctly.
func IsValidName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > 2
}
