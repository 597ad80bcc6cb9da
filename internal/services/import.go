package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skillup/internal/models"
	"skillup/internal/sanitize"
	"skillup/internal/store"
)

// ImportGoal is a goal exported from the browser version of the app.
// Its XP, status and dates are kept as they were.
type ImportGoal struct {
	GoalInput
	XP            int
	Status        string
	CompletedDate *time.Time
	CreatedAt     time.Time
}

type ImportPayload struct {
	Goals   []ImportGoal
	Profile *models.Profile
}

type ImportResult struct {
	GoalsImported   int              `json:"goals_imported"`
	ProfileImported bool             `json:"profile_imported"`
	Stats           models.UserStats `json:"stats"`
}

func (s *GoalService) prepareImport(userID int64, in ImportGoal) (models.Goal, error) {
	g, err := validateGoal(in.GoalInput)
	if err != nil {
		return g, err
	}
	status := models.GoalStatus(in.Status)
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() || in.XP < 0 {
		return g, models.ErrInvalidImport
	}

	g.UserID = userID
	g.Status = status
	g.XP = in.XP
	if g.XP == 0 {
		g.XP = models.ComputeXP(g.Difficulty, g.Description)
	}
	g.CreatedAt = in.CreatedAt.UTC()
	if in.CreatedAt.IsZero() {
		g.CreatedAt = s.now().UTC()
	}
	if status == models.StatusCompleted {
		g.Completed = true
		done := g.CreatedAt
		if in.CompletedDate != nil && !in.CompletedDate.IsZero() {
			done = in.CompletedDate.UTC()
		}
		g.CompletedDate = &done
	}
	return g, nil
}

// Import stores previously exported goals and profile settings in one
// transaction and rebuilds the stats afterwards. Deadlines are not checked
// against today; a goal may legitimately be overdue by now.
func (s *GoalService) Import(ctx context.Context, userID int64, p ImportPayload) (ImportResult, error) {
	if len(p.Goals) == 0 && p.Profile == nil {
		return ImportResult{}, models.ErrEmptyImport
	}

	goals := make([]models.Goal, 0, len(p.Goals))
	for i, in := range p.Goals {
		g, err := s.prepareImport(userID, in)
		if err != nil {
			return ImportResult{}, fmt.Errorf("goal %d: %w", i+1, err)
		}
		if err := s.enc.EncryptGoal(&g); err != nil {
			return ImportResult{}, fmt.Errorf("encrypt goal: %w", err)
		}
		goals = append(goals, g)
	}

	var profile *models.Profile
	if p.Profile != nil {
		pr := importedProfile(userID, *p.Profile)
		if err := s.enc.EncryptProfile(&pr); err != nil {
			return ImportResult{}, fmt.Errorf("encrypt profile: %w", err)
		}
		profile = &pr
	}

	res := ImportResult{ProfileImported: profile != nil}
	err := s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if _, err := r.Users().GetByID(ctx, userID); err != nil {
			return userErr(err)
		}
		for i := range goals {
			if err := r.Goals().Create(ctx, &goals[i]); err != nil {
				return err
			}
		}
		if profile != nil {
			if err := r.Profiles().Upsert(ctx, *profile); err != nil {
				return err
			}
		}
		all, err := r.Goals().ListByUser(ctx, userID, 0)
		if err != nil {
			return err
		}
		res.Stats = models.StatsFromGoals(userID, all)
		return r.Stats().Put(ctx, res.Stats)
	})
	if err != nil {
		return ImportResult{}, err
	}

	res.GoalsImported = len(goals)
	s.log.Info("data imported",
		zap.Int64("user_id", userID),
		zap.Int("goals", res.GoalsImported),
		zap.Bool("profile", res.ProfileImported),
	)
	return res, nil
}

func importedProfile(userID int64, p models.Profile) models.Profile {
	out := models.Profile{
		UserID:             userID,
		Name:               sanitize.Text(p.Name),
		Email:              normalizeEmail(p.Email),
		Phone:              sanitize.Text(p.Phone),
		Location:           sanitize.Text(p.Location),
		Bio:                sanitize.Text(p.Bio),
		Website:            sanitize.Text(p.Website),
		EmailNotifications: p.EmailNotifications,
		ProfileVisibility:  sanitize.Text(p.ProfileVisibility),
	}
	if out.ProfileVisibility == "" {
		out.ProfileVisibility = DefaultVisibility
	}
	return out
}
