package services

import (
	"sort"
	"time"

	"skillup/internal/models"
)

const (
	XPPerLevel         = 1000
	DefaultRecentLimit = 5
	DefaultActivityXP  = 100
	dayKeyLayout       = "2006-01-02"
)

// Stats is the dashboard view of a goal set. It is derived on every request.
type Stats struct {
	TotalGoals       int     `json:"total_goals"`
	CompletedGoals   int     `json:"completed_goals"`
	ActiveGoals      int     `json:"active_goals"`
	TotalXP          int     `json:"total_xp"`
	EarnedXP         int     `json:"earned_xp"`
	Level            int     `json:"level"`
	GoalsProgressPct float64 `json:"goals_progress_pct"`
	XPProgressPct    float64 `json:"xp_progress_pct"`
	Streak           int     `json:"streak"`
}

// LevelFor starts at level 1 and adds one level per XPPerLevel.
func LevelFor(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

// XPProgress is the percentage reached within the current level.
func XPProgress(totalXP int) float64 {
	if totalXP < 0 {
		return 0
	}
	return float64(totalXP%XPPerLevel) / 10
}

// ComputeStats is pure: the same goals and today always give the same Stats.
// TotalXP counts every goal; EarnedXP only completed ones.
func ComputeStats(goals []models.Goal, today time.Time) Stats {
	var s Stats
	for _, g := range goals {
		s.TotalGoals++
		s.TotalXP += g.XP
		if g.Status == models.StatusCompleted {
			s.CompletedGoals++
			s.EarnedXP += g.XP
		} else {
			s.ActiveGoals++
		}
	}
	s.Level = LevelFor(s.TotalXP)
	s.XPProgressPct = XPProgress(s.TotalXP)
	if s.TotalGoals > 0 {
		s.GoalsProgressPct = float64(s.CompletedGoals) / float64(s.TotalGoals) * 100
	}
	s.Streak = Streak(goals, today)
	return s
}

// Streak counts consecutive calendar days, ending at today, on which at least
// one goal was created or completed. Days are taken in today's location.
func Streak(goals []models.Goal, today time.Time) int {
	loc := today.Location()
	active := make(map[string]bool, len(goals)*2)
	for _, g := range goals {
		if !g.CreatedAt.IsZero() {
			active[g.CreatedAt.In(loc).Format(dayKeyLayout)] = true
		}
		if g.CompletedDate != nil && !g.CompletedDate.IsZero() {
			active[g.CompletedDate.In(loc).Format(dayKeyLayout)] = true
		}
	}

	streak := 0
	day := models.DateOf(today)
	for active[day.Format(dayKeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Activity is one line of the recent activity feed.
type Activity struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	XP        int       `json:"xp"`
}

// RecentActivity returns the newest goals first, skipping goals without a
// creation time. A goal with no XP is shown with DefaultActivityXP.
func RecentActivity(goals []models.Goal, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	dated := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if !g.CreatedAt.IsZero() {
			dated = append(dated, g)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].CreatedAt.After(dated[j].CreatedAt)
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}

	out := make([]Activity, 0, len(dated))
	for _, g := range dated {
		xp := g.XP
		if xp == 0 {
			xp = DefaultActivityXP
		}
		out = append(out, Activity{Title: g.Title, CreatedAt: g.CreatedAt, XP: xp})
	}
	return out
}
