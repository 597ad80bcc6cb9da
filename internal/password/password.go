// Package password holds the password policy and the salted-hash comparison
// used at the account boundary.
package password

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"skillup/internal/models"
)

const (
	// LegacyMinLength is the older signup minimum, checked before the strength rules.
	LegacyMinLength = 6
	MinLength       = 8

	// MaxBytes is the longest input bcrypt accepts.
	MaxBytes = 72
)

// IsStrong reports whether pwd has at least MinLength characters including a
// lowercase and an uppercase ASCII letter, a digit and a symbol (any character
// that is neither a word character nor whitespace).
func IsStrong(pwd string) bool {
	if utf8.RuneCountInString(pwd) < MinLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r == '_' || unicode.IsSpace(r):
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Validate applies the signup policy: the legacy minimum first, then strength.
func Validate(pwd string) error {
	if utf8.RuneCountInString(pwd) < LegacyMinLength {
		return models.ErrPasswordTooShort
	}
	if len(pwd) > MaxBytes {
		return models.ErrPasswordTooLong
	}
	if !IsStrong(pwd) {
		return models.ErrWeakPassword
	}
	return nil
}

// Hasher hides the hashing scheme from the account service.
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare returns ErrMismatch when plain does not match hash.
	Compare(hash, plain string) error
}

var ErrMismatch = errors.New("password does not match")

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
