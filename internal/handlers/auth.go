package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillup/internal/models"
	"skillup/internal/password"
)

// Authenticator is the part of the account service the auth endpoints need.
type Authenticator interface {
	Register(ctx context.Context, name, email, plain string) (models.User, error)
	Authenticate(ctx context.Context, email, plain string) (models.User, error)
}

type AuthHandler struct {
	accounts  Authenticator
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewAuthHandler(accounts Authenticator, jwtSecret []byte, tokenTTL time.Duration, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log, now: time.Now}
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptTerms     bool   `json:"accept_terms"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)
	if req.Password != req.ConfirmPassword {
		writeError(w, r, h.log, models.ErrPasswordMismatch)
		return
	}
	if err := password.Validate(req.Password); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if !req.AcceptTerms {
		writeError(w, r, h.log, models.ErrTermsNotAccepted)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c.Password = strings.TrimSpace(c.Password)
	if !password.IsStrong(c.Password) {
		writeError(w, r, h.log, models.ErrWeakPassword)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), c.Email, c.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := h.issueJWT(user.ID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: ToUserDTO(user)})
}

func (h *AuthHandler) issueJWT(userID int64) (string, error) {
	now := h.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
