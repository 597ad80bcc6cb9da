package handlers

import (
	"time"

	"skillup/internal/models"
)

const dateLayout = "2006-01-02"

// UserDTO never carries the password hash or the blind index.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// GoalDTO renders deadlines as plain dates and adds the classification
// derived for the request's today.
type GoalDTO struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Category      models.Category      `json:"category"`
	Description   string               `json:"description"`
	Difficulty    models.Difficulty    `json:"difficulty"`
	Deadline      string               `json:"deadline"`
	XP            int                  `json:"xp"`
	Status        models.GoalStatus    `json:"status"`
	Completed     bool                 `json:"completed"`
	CompletedDate *string              `json:"completed_date,omitempty"`
	CreatedAt     string               `json:"created_at"`
	State         models.DeadlineState `json:"state"`
	DaysRemaining int                  `json:"days_remaining"`
}

func toDateTimeStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ToGoalDTO(g models.Goal, today time.Time) GoalDTO {
	c := models.Classify(g, today)
	return GoalDTO{
		ID:            g.ID,
		Title:         g.Title,
		Category:      g.Category,
		Description:   g.Description,
		Difficulty:    g.Difficulty,
		Deadline:      g.Deadline.Format(dateLayout),
		XP:            g.XP,
		Status:        g.Status,
		Completed:     g.Completed,
		CompletedDate: toDateTimeStringPtr(g.CompletedDate),
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
		State:         c.State,
		DaysRemaining: c.DaysRemaining,
	}
}

func ToGoalDTOs(goals []models.Goal, today time.Time) []GoalDTO {
	out := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToGoalDTO(g, today))
	}
	return out
}
