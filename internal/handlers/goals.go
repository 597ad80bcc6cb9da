package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skillup/internal/models"
	"skillup/internal/services"
)

// GoalService is implemented by services.GoalService.
type GoalService interface {
	Today() time.Time
	CreateGoal(ctx context.Context, userID int64, in services.GoalInput) (models.Goal, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Goal, error)
	CompleteGoal(ctx context.Context, userID, goalID int64) (models.Goal, error)
	Summary(ctx context.Context, userID int64) (models.UserStats, error)
	XPPreview(difficulty string) (int, error)
	Dashboard(ctx context.Context, userID int64, today time.Time) (services.Stats, []services.Activity, error)
	Import(ctx context.Context, userID int64, p services.ImportPayload) (services.ImportResult, error)
}

var (
	errInvalidGoalID    = &models.AppError{Kind: models.KindValidation, Code: "INVALID_GOAL_ID", Message: "Goal id must be a positive number"}
	errInvalidLimit     = &models.AppError{Kind: models.KindValidation, Code: "INVALID_LIMIT", Message: "limit must be a positive number"}
	errInvalidLocalDate = &models.AppError{Kind: models.KindValidation, Code: "INVALID_LOCAL_DATE", Message: "local_date must be in YYYY-MM-DD format"}
	errInvalidTimezone  = &models.AppError{Kind: models.KindValidation, Code: "INVALID_TIMEZONE", Message: "tz must be an IANA time zone such as Europe/Lisbon"}
)

type GoalHandler struct {
	goals GoalService
	log   *zap.Logger
}

func NewGoalHandler(goals GoalService, log *zap.Logger) *GoalHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalHandler{goals: goals, log: log}
}

type goalRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	g, err := h.goals.CreateGoal(r.Context(), uid, services.GoalInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, ToGoalDTO(g, h.goals.Today()))
}

// List returns the most recent goals, or all of them with ?all=true.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var (
		goals []models.Goal
		err   error
	)
	if all, _ := strconv.ParseBool(q.Get("all")); all {
		goals, err = h.goals.ListByUser(r.Context(), uid)
	} else {
		limit := services.DefaultRecentLimit
		if v := q.Get("limit"); v != "" {
			limit, err = strconv.Atoi(v)
			if err != nil || limit <= 0 {
				writeError(w, r, h.log, errInvalidLimit)
				return
			}
		}
		goals, err = h.goals.ListRecent(r.Context(), uid, limit)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": ToGoalDTOs(goals, h.goals.Today())})
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	goalID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || goalID <= 0 {
		writeError(w, r, h.log, errInvalidGoalID)
		return
	}
	g, err := h.goals.CompleteGoal(r.Context(), uid, goalID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ToGoalDTO(g, h.goals.Today()))
}
