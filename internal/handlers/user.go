package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"skillup/internal/models"
)

// AccountService is implemented by services.AccountService.
type AccountService interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	DeleteAccount(ctx context.Context, userID int64) error
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	SaveProfile(ctx context.Context, userID int64, in models.Profile) (models.Profile, error)
	SetNotifications(ctx context.Context, userID int64, enabled bool) error
	SetVisibility(ctx context.Context, userID int64, visibility string) (string, error)
}

var errMissingEnabled = &models.AppError{Kind: models.KindValidation, Code: "MISSING_ENABLED", Message: "enabled must be true or false"}

type UserHandler struct {
	accounts AccountService
	log      *zap.Logger
}

func NewUserHandler(accounts AccountService, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{accounts: accounts, log: log}
}

type meResponse struct {
	User    UserDTO        `json:"user"`
	Profile models.Profile `json:"profile"`
}

// GetMe returns the current user and their profile settings
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	u, err := h.accounts.GetUser(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.accounts.GetProfile(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{User: ToUserDTO(u), Profile: p})
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.accounts.DeleteAccount(r.Context(), uid); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var body models.Profile
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.accounts.SaveProfile(r.Context(), uid, body)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *UserHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if body.Enabled == nil {
		writeError(w, r, h.log, errMissingEnabled)
		return
	}
	if err := h.accounts.SetNotifications(r.Context(), uid, *body.Enabled); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"email_notifications": *body.Enabled})
}

func (h *UserHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var body struct {
		Visibility string `json:"visibility"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	stored, err := h.accounts.SetVisibility(r.Context(), uid, body.Visibility)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profile_visibility": stored})
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if body.NewPassword != body.ConfirmPassword {
		writeError(w, r, h.log, models.ErrPasswordMismatch)
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), uid, body.CurrentPassword, body.NewPassword); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
