package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrMismatch      = errors.New("password does not match")
)

// bcrypt cost stays at the library default; raising it is a deployment
// decision, not a code change.
const hashCost = bcrypt.DefaultCost

func HashPassword(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ComparePassword(hash, raw string) error {
	if hash == "" || raw == "" {
		return ErrEmptyPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
