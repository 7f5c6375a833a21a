package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrCodeMismatch = errors.New("code does not match")

// HashCode hashes a one-time code before it is stored.
func HashCode(code string) (string, error) {
	if code == "" {
		return "", errors.New("empty code")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareCode checks a submitted code against a stored hash.
func CompareCode(hash, code string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrCodeMismatch
	}
	return nil
}
