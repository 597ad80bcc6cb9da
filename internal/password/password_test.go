package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skillup/internal/models"
)

func TestIsStrong(t *testing.T) {
	tests := []struct {
		pwd  string
		want bool
	}{
		{"Abcdef1!", true},
		{"Str0ng#Pass", true},
		{"abcdef1!", false}, // no upper
		{"ABCDEF1!", false}, // no lower
		{"Abcdefg!", false}, // no digit
		{"Abcdefg1", false}, // no symbol
		{"Abcdef1_", false}, // underscore is a word char
		{"Abcdef1 ", false}, // space is not a symbol
		{"Ab1!", false},     // too short
		{"Abcdéf1!", true},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.pwd, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStrong(tc.pwd))
		})
	}
}

func TestValidate_Order(t *testing.T) {
	assert.ErrorIs(t, Validate("Ab1!"), models.ErrPasswordTooShort)
	assert.ErrorIs(t, Validate("abcdefg"), models.ErrWeakPassword)
	assert.NoError(t, Validate("Abcdef1!"))

	long := "Aa1!" + strings.Repeat("x", 76)
	assert.ErrorIs(t, Validate(long), models.ErrPasswordTooLong)
	assert.NoError(t, Validate("Aa1!"+strings.Repeat("x", 68)))
	// limit is in bytes: 35 two-byte runes plus 4 ASCII
	assert.ErrorIs(t, Validate("Aa1!"+strings.Repeat("é", 35)), models.ErrPasswordTooLong)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("a", MaxBytes+1))
	assert.ErrorIs(t, err, models.ErrPasswordTooLong)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)

	assert.NoError(t, h.Compare(hash, "Abcdef1!"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.Error(t, h.Compare("not-a-hash", "Abcdef1!"))
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
}
