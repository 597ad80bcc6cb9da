package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"skillup/internal/models"
	"skillup/internal/services"
)

// MigrateHandler moves data kept in the browser's local storage into the
// user's account.
type MigrateHandler struct {
	goals GoalService
	log   *zap.Logger
}

func NewMigrateHandler(goals GoalService, log *zap.Logger) *MigrateHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MigrateHandler{goals: goals, log: log}
}

type MigratedGoal struct {
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Difficulty    string     `json:"difficulty"`
	Deadline      string     `json:"deadline"` // YYYY-MM-DD
	XP            int        `json:"xp"`
	Status        string     `json:"status"`
	CompletedDate *time.Time `json:"completed_date"`
	CreatedAt     *time.Time `json:"created_at"`
}

type MigrateRequest struct {
	Goals   []MigratedGoal  `json:"goals"`
	Profile *models.Profile `json:"profile"`
}

func (m MigrateRequest) payload() services.ImportPayload {
	p := services.ImportPayload{Profile: m.Profile}
	for _, g := range m.Goals {
		ig := services.ImportGoal{
			GoalInput: services.GoalInput{
				Title:       g.Title,
				Category:    g.Category,
				Description: g.Description,
				Difficulty:  g.Difficulty,
				Deadline:    g.Deadline,
			},
			XP:            g.XP,
			Status:        g.Status,
			CompletedDate: g.CompletedDate,
		}
		if g.CreatedAt != nil {
			ig.CreatedAt = *g.CreatedAt
		}
		p.Goals = append(p.Goals, ig)
	}
	return p
}

func (h *MigrateHandler) Import(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req MigrateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	res, err := h.goals.Import(r.Context(), uid, req.payload())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
