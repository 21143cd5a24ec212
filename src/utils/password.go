package utils

import (
	"errors"
	"unicode/utf8"

	apperrors "user-auth-service/src/error"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is counted in characters, not bytes.
const MaxPasswordLength = 64

// bcrypt rejects inputs longer than this many bytes.
const bcryptMaxBytes = 72

var hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", apperrors.FromReason(apperrors.HashingError)
	}
	return string(hashed), nil
}

// ComparePassword reports whether password matches hashed. A mismatch is not an error.
func ComparePassword(password, hashed string) (bool, error) {
	if err := checkPassword(password); err != nil {
		return false, err
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperrors.FromReason(apperrors.InvalidHashFormat)
	}
}

func checkPassword(password string) error {
	if password == "" {
		return apperrors.FromReason(apperrors.EmptyPassword)
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength || len(password) > bcryptMaxBytes {
		return apperrors.FromReason(apperrors.ExceededMaxPasswordLength(MaxPasswordLength))
	}
	return nil
}
