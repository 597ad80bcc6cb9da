package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorResponseBody is the JSON shape of every API error.
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

func WriteError(w http.ResponseWriter, status int, code, message, category string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponseBody{Code: code, Message: message, Category: category})
}

// WriteInternalError hides the cause; callers log it.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again", "system")
}
