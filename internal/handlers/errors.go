package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	mw "skillup/internal/middleware"
	"skillup/internal/models"
)

var errInvalidBody = &models.AppError{Kind: models.KindValidation, Code: "INVALID_BODY", Message: "Request body is not valid JSON"}

func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindConflict:
		return http.StatusConflict
	case models.KindAuth:
		return http.StatusUnauthorized
	case models.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError reports AppErrors to the client as is. Anything else is logged
// and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		mw.WriteError(w, statusFor(appErr.Kind), appErr.Code, appErr.Message, appErr.Kind.String())
		return
	}
	log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	mw.WriteInternalError(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// userID reads the id set by RequireAuth. Routes without it are misconfigured.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := mw.UserIDFromContext(r.Context())
	if err != nil {
		mw.WriteError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Please log in to continue", "auth")
		return 0, false
	}
	return id, true
}
