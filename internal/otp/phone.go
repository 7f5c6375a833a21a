package otp

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidCode  = errors.New("invalid otp format")
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	tenDigits = regexp.MustCompile(`^[0-9]{10}$`)
)

// NormalizePhone reduces an Indian mobile number to its 10 digits. A +91 or
// 91 prefix is accepted; anything else that is not exactly 10 digits fails.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if !tenDigits.MatchString(digits) {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// ValidCode reports whether code has exactly length digits.
func ValidCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
