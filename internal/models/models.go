package models

import "time"

type User struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`         // Encrypted in DB
	EmailBlindIndex string    `db:"email_blind_index" json:"-"` // HMAC hash for lookup and uniqueness
	PasswordHash    string    `db:"password_hash" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Profile holds the display overrides a user edits on the profile page.
// A user has at most one; it is created on first save.
type Profile struct {
	UserID             int64  `db:"user_id" json:"-"`
	Name               string `db:"name" json:"name"`
	Email              string `db:"email" json:"email"`       // Encrypted in DB
	Phone              string `db:"phone" json:"phone"`       // Encrypted in DB
	Location           string `db:"location" json:"location"` // Encrypted in DB
	Bio                string `db:"bio" json:"bio"`           // Encrypted in DB
	Website            string `db:"website" json:"website"`
	EmailNotifications bool   `db:"email_notifications" json:"email_notifications"`
	ProfileVisibility  string `db:"profile_visibility" json:"profile_visibility"`
}

type Goal struct {
	ID            int64      `db:"id" json:"id"`
	UserID        int64      `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	Category      Category   `db:"category" json:"category"`
	Description   string     `db:"description" json:"description"` // Encrypted in DB
	Difficulty    Difficulty `db:"difficulty" json:"difficulty"`
	Deadline      time.Time  `db:"deadline" json:"deadline"`
	XP            int        `db:"xp" json:"xp"`
	Status        GoalStatus `db:"status" json:"status"`
	Completed     bool       `db:"completed" json:"completed"`
	CompletedDate *time.Time `db:"completed_date" json:"completed_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// UserStats is the denormalized counter row kept per user.
// It can always be rebuilt from the user's goals.
type UserStats struct {
	UserID      int64 `db:"user_id" json:"-"`
	TotalGoals  int   `db:"total_goals" json:"total_goals"`
	ActiveGoals int   `db:"active_goals" json:"active_goals"`
	TotalXP     int   `db:"total_xp" json:"total_xp"`
}

// StatsFromGoals recomputes the counters from scratch.
func StatsFromGoals(userID int64, goals []Goal) UserStats {
	s := UserStats{UserID: userID}
	for _, g := range goals {
		s.TotalGoals++
		if g.Status == StatusActive {
			s.ActiveGoals++
		}
		s.TotalXP += g.XP
	}
	return s
}
