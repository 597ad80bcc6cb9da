package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// ProgressHandler serves the cached counters and the XP preview shown on the
// goal form.
type ProgressHandler struct {
	goals GoalService
	log   *zap.Logger
}

func NewProgressHandler(goals GoalService, log *zap.Logger) *ProgressHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressHandler{goals: goals, log: log}
}

func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	stats, err := h.goals.Summary(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ProgressHandler) XPPreview(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	xp, err := h.goals.XPPreview(difficulty)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"difficulty": difficulty, "xp": xp})
}
