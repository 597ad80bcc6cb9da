package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"skillup/internal/metrics"
	"skillup/internal/models"
	"skillup/internal/password"
	"skillup/internal/sanitize"
	"skillup/internal/store"
)

const (
	DefaultVisibility = "public"
	maxVisibilityLen  = 32
)

type AccountService struct {
	store   store.Store
	enc     *EncryptionService
	hasher  password.Hasher
	metrics metrics.Recorder
	log     *zap.Logger
}

func NewAccountService(st store.Store, enc *EncryptionService, hasher password.Hasher, rec metrics.Recorder, log *zap.Logger) *AccountService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{store: st, enc: enc, hasher: hasher, metrics: rec, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return models.ErrMissingEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return models.ErrInvalidEmail
	}
	return nil
}

// Register creates an account. The email is matched case-insensitively, so
// "Ana@X.com" and "ana@x.com" are the same account. The password policy is
// checked by the caller.
func (s *AccountService) Register(ctx context.Context, name, email, plain string) (models.User, error) {
	email = normalizeEmail(email)
	plain = strings.TrimSpace(plain)
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}

	index := s.enc.EmailBlindIndex(email)
	if _, err := s.store.Users().GetByEmailIndex(ctx, index); err == nil {
		return models.User{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(plain)
	if errors.Is(err, models.ErrPasswordTooLong) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{Name: sanitize.Text(name), Email: email, PasswordHash: hash}
	if err := s.enc.EncryptUser(&u); err != nil {
		return models.User{}, fmt.Errorf("encrypt user: %w", err)
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Users().Create(ctx, &u); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return models.ErrDuplicateEmail
			}
			return err
		}
		return r.Stats().Put(ctx, models.UserStats{UserID: u.ID})
	})
	if err != nil {
		return models.User{}, err
	}

	u.Email = email
	s.metrics.RecordRegistration()
	s.log.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

// Authenticate checks credentials. Unknown email and wrong password are the
// same error.
func (s *AccountService) Authenticate(ctx context.Context, email, plain string) (models.User, error) {
	email = normalizeEmail(email)
	plain = strings.TrimSpace(plain)
	u, err := s.store.Users().GetByEmailIndex(ctx, s.enc.EmailBlindIndex(email))
	if errors.Is(err, store.ErrNotFound) {
		s.metrics.RecordLogin(false)
		return models.User{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if err := s.hasher.Compare(u.PasswordHash, plain); err != nil {
		s.metrics.RecordLogin(false)
		if errors.Is(err, password.ErrMismatch) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := s.enc.DecryptUser(&u); err != nil {
		return models.User{}, fmt.Errorf("decrypt user: %w", err)
	}
	s.metrics.RecordLogin(true)
	return u, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return models.User{}, userErr(err)
	}
	if err := s.enc.DecryptUser(&u); err != nil {
		return models.User{}, fmt.Errorf("decrypt user: %w", err)
	}
	return u, nil
}

// ChangePassword requires the current password and applies the signup policy
// to the new one.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	current, next = strings.TrimSpace(current), strings.TrimSpace(next)
	if err := password.Validate(next); err != nil {
		return err
	}
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return userErr(err)
	}
	if err := s.hasher.Compare(u.PasswordHash, current); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return models.ErrWrongPassword
		}
		return err
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return userErr(s.store.Users().UpdatePassword(ctx, userID, hash))
}

// DeleteAccount removes the user with their goals, profile and stats.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Goals().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := r.Profiles().Delete(ctx, userID); err != nil {
			return err
		}
		if err := r.Stats().Delete(ctx, userID); err != nil {
			return err
		}
		return userErr(r.Users().Delete(ctx, userID))
	})
	if err != nil {
		return err
	}
	s.metrics.RecordAccountDeleted()
	s.log.Info("account deleted", zap.Int64("user_id", userID))
	return nil
}

// GetProfile returns the stored profile, or one built from the account when
// the user has never saved one.
func (s *AccountService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	p, err := s.store.Profiles().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Profile{
			UserID:             userID,
			Name:               u.Name,
			Email:              u.Email,
			EmailNotifications: true,
			ProfileVisibility:  DefaultVisibility,
		}, nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.enc.DecryptProfile(&p); err != nil {
		return models.Profile{}, fmt.Errorf("decrypt profile: %w", err)
	}
	if p.Name == "" {
		p.Name = u.Name
	}
	if p.Email == "" {
		p.Email = u.Email
	}
	return p, nil
}

// SaveProfile overwrites the profile and copies its name and email onto the
// account. A changed email must not belong to another account.
func (s *AccountService) SaveProfile(ctx context.Context, userID int64, in models.Profile) (models.Profile, error) {
	p := importedProfile(userID, in)
	if err := validateEmail(p.Email); err != nil {
		return models.Profile{}, err
	}
	if utf8.RuneCountInString(p.ProfileVisibility) > maxVisibilityLen {
		return models.Profile{}, models.ErrInvalidVisibility
	}

	u := models.User{Email: p.Email}
	if err := s.enc.EncryptUser(&u); err != nil {
		return models.Profile{}, fmt.Errorf("encrypt user: %w", err)
	}
	stored := p
	if err := s.enc.EncryptProfile(&stored); err != nil {
		return models.Profile{}, fmt.Errorf("encrypt profile: %w", err)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if owner, err := r.Users().GetByEmailIndex(ctx, u.EmailBlindIndex); err == nil && owner.ID != userID {
			return models.ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := r.Users().UpdateIdentity(ctx, userID, p.Name, u.Email, u.EmailBlindIndex); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return models.ErrDuplicateEmail
			}
			return userErr(err)
		}
		return r.Profiles().Upsert(ctx, stored)
	})
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *AccountService) SetNotifications(ctx context.Context, userID int64, enabled bool) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return userErr(err)
	}
	return s.store.Profiles().SetNotifications(ctx, userID, enabled)
}

// SetVisibility stores the sanitized value and returns it.
func (s *AccountService) SetVisibility(ctx context.Context, userID int64, visibility string) (string, error) {
	visibility = sanitize.Text(visibility)
	if visibility == "" || utf8.RuneCountInString(visibility) > maxVisibilityLen {
		return "", models.ErrInvalidVisibility
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return "", userErr(err)
	}
	if err := s.store.Profiles().SetVisibility(ctx, userID, visibility); err != nil {
		return "", err
	}
	return visibility, nil
}
