package models

import "fmt"

// ErrorKind groups application errors by how the API reports them.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindAuth
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	}
	return "system"
}

// AppError is a recoverable, user-facing failure. Sentinels below are compared with errors.Is.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func newErr(kind ErrorKind, code, msg string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: msg}
}

// Goal validation
var (
	ErrEmptyTitle        = newErr(KindValidation, "EMPTY_TITLE", "Please enter a goal title")
	ErrMissingCategory   = newErr(KindValidation, "MISSING_CATEGORY", "Please select a skill category")
	ErrInvalidCategory   = newErr(KindValidation, "INVALID_CATEGORY", "Unknown skill category")
	ErrMissingDifficulty = newErr(KindValidation, "MISSING_DIFFICULTY", "Please select a difficulty level")
	ErrInvalidDifficulty = newErr(KindValidation, "INVALID_DIFFICULTY", "Unknown difficulty level")
	ErrMissingDeadline   = newErr(KindValidation, "MISSING_DEADLINE", "Please set a target deadline")
	ErrInvalidDeadline   = newErr(KindValidation, "INVALID_DEADLINE", "Deadline must be a date in YYYY-MM-DD format")
	ErrPastDeadline      = newErr(KindValidation, "PAST_DEADLINE", "Please select a future date for your deadline")
	ErrInvalidImport     = newErr(KindValidation, "INVALID_IMPORT", "Imported data contains an invalid goal")
	ErrEmptyImport       = newErr(KindValidation, "EMPTY_IMPORT", "No goals or profile data provided")
)

// Account validation
var (
	ErrMissingEmail      = newErr(KindValidation, "MISSING_EMAIL", "Please enter your email address")
	ErrInvalidEmail      = newErr(KindValidation, "INVALID_EMAIL", "Please enter a valid email address")
	ErrPasswordMismatch  = newErr(KindValidation, "PASSWORD_MISMATCH", "Passwords do not match")
	ErrPasswordTooShort  = newErr(KindValidation, "PASSWORD_TOO_SHORT", "Password must be at least 6 characters long")
	ErrPasswordTooLong   = newErr(KindValidation, "PASSWORD_TOO_LONG", "Password must be at most 72 bytes long")
	ErrWeakPassword      = newErr(KindValidation, "WEAK_PASSWORD", "Please use a strong password (8+ chars, uppercase, lowercase, number, symbol).")
	ErrTermsNotAccepted  = newErr(KindValidation, "TERMS_NOT_ACCEPTED", "Please agree to the Terms & Conditions")
	ErrInvalidVisibility = newErr(KindValidation, "INVALID_VISIBILITY", "Please choose a profile visibility")
)

// Conflicts
var (
	ErrDuplicateEmail       = newErr(KindConflict, "DUPLICATE_EMAIL", "User with this email already exists")
	ErrGoalAlreadyCompleted = newErr(KindConflict, "GOAL_ALREADY_COMPLETED", "This goal is already completed")
)

// Auth
var (
	ErrInvalidCredentials = newErr(KindAuth, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrWrongPassword      = newErr(KindAuth, "WRONG_PASSWORD", "Current password is incorrect")
)

// Not found
var (
	ErrUserNotFound = newErr(KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrGoalNotFound = newErr(KindNotFound, "GOAL_NOT_FOUND", "Goal not found")
)
