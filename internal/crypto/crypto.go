package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const KeySize = 32

var (
	ErrKeySize            = errors.New("key must be 32 bytes")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// EncryptionService handles field encryption and blind indexing.
// The AEAD is built once; it is safe for concurrent use.
type EncryptionService struct {
	aead          cipher.AEAD
	blindIndexKey []byte
}

// NewEncryptionService builds an AES-256-GCM cipher from encryptionKey and keeps
// blindIndexKey for HMAC-SHA256 lookups. Both keys must be KeySize bytes.
func NewEncryptionService(encryptionKey, blindIndexKey []byte) (*EncryptionService, error) {
	if len(encryptionKey) != KeySize {
		return nil, fmt.Errorf("encryption key: %w", ErrKeySize)
	}
	if len(blindIndexKey) != KeySize {
		return nil, fmt.Errorf("blind index key: %w", ErrKeySize)
	}
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	key := make([]byte, KeySize)
	copy(key, blindIndexKey)
	return &EncryptionService{aead: gcm, blindIndexKey: key}, nil
}

// DecodeKey parses a base64 (std or raw url) encoded key of KeySize bytes.
func DecodeKey(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawURLEncoding, base64.URLEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			if len(b) != KeySize {
				return nil, ErrKeySize
			}
			return b, nil
		}
	}
	return nil, errors.New("key is not valid base64")
}

// Encrypt returns base64(nonce || ciphertext). Empty input stays empty.
func (s *EncryptionService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (s *EncryptionService) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", ErrCiphertextTooShort
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// GenerateBlindIndex is a deterministic HMAC-SHA256 of plaintext, used to search
// and enforce uniqueness on encrypted columns without revealing the value.
func (s *EncryptionService) GenerateBlindIndex(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	h := hmac.New(sha256.New, s.blindIndexKey)
	h.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// EncryptWithBlindIndex encrypts data and returns both encrypted value and blind index
func (s *EncryptionService) EncryptWithBlindIndex(plaintext string) (encrypted, blindIndex string, err error) {
	encrypted, err = s.Encrypt(plaintext)
	if err != nil {
		return "", "", err
	}
	return encrypted, s.GenerateBlindIndex(plaintext), nil
}
