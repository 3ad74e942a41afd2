// Package validation holds the field-level predicates used at the edges of
// the catalog and member directory. Every function is a pure check of one
// input value with no side effects.
package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	isbnSeparators  = regexp.MustCompile(`[-\s]`)
	isbnDigits      = regexp.MustCompile(`^\d{10}(\d{3})?$`)
	emailShape      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneSeparators = regexp.MustCompile(`[\s()-]`)
	phoneDigits     = regexp.MustCompile(`^\d{10,15}$`)
)

// IsNotEmpty reports whether s has any non-whitespace content.
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidISBN accepts 10 or 13 digits once dashes and whitespace are removed.
// Check digits are not verified.
func IsValidISBN(isbn string) bool {
	return isbnDigits.MatchString(isbnSeparators.ReplaceAllString(isbn, ""))
}

// IsValidEmail checks the local@domain.tld shape only.
func IsValidEmail(email string) bool {
	return emailShape.MatchString(email)
}

// IsValidPhone accepts 10 to 15 digits once spaces, parentheses and dashes
// are removed.
func IsValidPhone(phone string) bool {
	return phoneDigits.MatchString(phoneSeparators.ReplaceAllString(phone, ""))
}

// IsValidDate rejects the zero time.
func IsValidDate(t time.Time) bool {
	return !t.IsZero()
}
