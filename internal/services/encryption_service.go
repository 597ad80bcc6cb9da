package services

import (
	"skillup/internal/crypto"
	"skillup/internal/models"
)

// EncryptionService wraps the crypto service with domain-specific methods
type EncryptionService struct {
	crypto *crypto.EncryptionService
}

func NewEncryptionService(encryptionKey, blindIndexKey []byte) (*EncryptionService, error) {
	cryptoSvc, err := crypto.NewEncryptionService(encryptionKey, blindIndexKey)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{crypto: cryptoSvc}, nil
}

// EncryptUser encrypts the email in place and sets its blind index.
// The email must already be normalized.
func (s *EncryptionService) EncryptUser(user *models.User) error {
	encryptedEmail, blindIndex, err := s.crypto.EncryptWithBlindIndex(user.Email)
	if err != nil {
		return err
	}
	user.Email = encryptedEmail
	user.EmailBlindIndex = blindIndex
	return nil
}

func (s *EncryptionService) DecryptUser(user *models.User) error {
	email, err := s.crypto.Decrypt(user.Email)
	if err != nil {
		return err
	}
	user.Email = email
	return nil
}

// EncryptProfile encrypts the contact fields of a profile before storing it.
func (s *EncryptionService) EncryptProfile(p *models.Profile) error {
	return s.apply(s.crypto.Encrypt, &p.Email, &p.Phone, &p.Location, &p.Bio)
}

func (s *EncryptionService) DecryptProfile(p *models.Profile) error {
	return s.apply(s.crypto.Decrypt, &p.Email, &p.Phone, &p.Location, &p.Bio)
}

func (s *EncryptionService) EncryptGoal(goal *models.Goal) error {
	return s.apply(s.crypto.Encrypt, &goal.Description)
}

func (s *EncryptionService) DecryptGoal(goal *models.Goal) error {
	return s.apply(s.crypto.Decrypt, &goal.Description)
}

func (s *EncryptionService) DecryptGoals(goals []models.Goal) error {
	for i := range goals {
		if err := s.DecryptGoal(&goals[i]); err != nil {
			return err
		}
	}
	return nil
}

// EmailBlindIndex generates the lookup key for a normalized email.
func (s *EncryptionService) EmailBlindIndex(email string) string {
	return s.crypto.GenerateBlindIndex(email)
}

func (s *EncryptionService) apply(fn func(string) (string, error), fields ...*string) error {
	for _, f := range fields {
		if *f == "" {
			continue
		}
		v, err := fn(*f)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}
