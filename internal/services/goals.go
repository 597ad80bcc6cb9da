package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skillup/internal/metrics"
	"skillup/internal/models"
	"skillup/internal/sanitize"
	"skillup/internal/store"
)

const dateLayout = "2006-01-02"

// GoalInput is a goal as entered on the creation form. Deadline is YYYY-MM-DD.
type GoalInput struct {
	Title       string
	Category    string
	Description string
	Difficulty  string
	Deadline    string
}

type GoalService struct {
	store   store.Store
	enc     *EncryptionService
	metrics metrics.Recorder
	log     *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewGoalService evaluates "today" in loc. A nil loc means UTC.
func NewGoalService(st store.Store, enc *EncryptionService, rec metrics.Recorder, log *zap.Logger, loc *time.Location) *GoalService {
	if loc == nil {
		loc = time.UTC
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalService{store: st, enc: enc, metrics: rec, log: log, loc: loc, now: time.Now}
}

// Today is the current date in the service location.
func (s *GoalService) Today() time.Time {
	return s.now().In(s.loc)
}

// ParseDate reads a YYYY-MM-DD date as midnight UTC.
func ParseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, v)
}

func validateGoal(in GoalInput) (models.Goal, error) {
	g := models.Goal{
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Category:    models.Category(in.Category),
		Difficulty:  models.Difficulty(in.Difficulty),
	}
	if g.Title == "" {
		return g, models.ErrEmptyTitle
	}
	switch {
	case in.Category == "":
		return g, models.ErrMissingCategory
	case !g.Category.Valid():
		return g, models.ErrInvalidCategory
	}
	switch {
	case in.Difficulty == "":
		return g, models.ErrMissingDifficulty
	case !g.Difficulty.Valid():
		return g, models.ErrInvalidDifficulty
	}
	if in.Deadline == "" {
		return g, models.ErrMissingDeadline
	}
	deadline, err := ParseDate(in.Deadline)
	if err != nil {
		return g, models.ErrInvalidDeadline
	}
	g.Deadline = deadline
	return g, nil
}

// CreateGoal validates the input, fixes the XP reward and stores the goal
// together with the updated stats. The deadline must be after today.
func (s *GoalService) CreateGoal(ctx context.Context, userID int64, in GoalInput) (models.Goal, error) {
	g, err := validateGoal(in)
	if err != nil {
		return models.Goal{}, err
	}
	if models.DaysBetween(s.Today(), g.Deadline) <= 0 {
		return models.Goal{}, models.ErrPastDeadline
	}

	g.UserID = userID
	g.XP = models.ComputeXP(g.Difficulty, g.Description)
	g.Status = models.StatusActive
	g.CreatedAt = s.now().UTC()

	stored := g
	if err := s.enc.EncryptGoal(&stored); err != nil {
		return models.Goal{}, fmt.Errorf("encrypt goal: %w", err)
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if _, err := r.Users().GetByID(ctx, userID); err != nil {
			return userErr(err)
		}
		if err := r.Goals().Create(ctx, &stored); err != nil {
			return userErr(err)
		}
		return applyStats(ctx, r, userID, 1, 1, g.XP)
	})
	if err != nil {
		return models.Goal{}, err
	}

	g.ID = stored.ID
	s.metrics.RecordGoalCreated(string(g.Category), string(g.Difficulty), g.XP)
	s.log.Info("goal created",
		zap.Int64("user_id", userID),
		zap.Int64("goal_id", g.ID),
		zap.String("difficulty", string(g.Difficulty)),
		zap.Int("xp", g.XP),
	)
	return g, nil
}

// ListRecent returns at most limit goals, newest first. limit <= 0 means DefaultRecentLimit.
func (s *GoalService) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Goal, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.list(ctx, userID, limit)
}

// ListByUser returns every goal of the user, newest first.
func (s *GoalService) ListByUser(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.list(ctx, userID, 0)
}

func (s *GoalService) list(ctx context.Context, userID int64, limit int) ([]models.Goal, error) {
	goals, err := s.store.Goals().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.enc.DecryptGoals(goals); err != nil {
		return nil, fmt.Errorf("decrypt goals: %w", err)
	}
	return goals, nil
}

// CompleteGoal moves an active goal to completed. Completing twice is a conflict.
func (s *GoalService) CompleteGoal(ctx context.Context, userID, goalID int64) (models.Goal, error) {
	var g models.Goal
	at := s.now().UTC()
	err := s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		var err error
		g, err = r.Goals().Get(ctx, userID, goalID)
		if errors.Is(err, store.ErrNotFound) {
			return models.ErrGoalNotFound
		}
		if err != nil {
			return err
		}
		if g.Status == models.StatusCompleted {
			return models.ErrGoalAlreadyCompleted
		}
		if err := r.Goals().MarkCompleted(ctx, userID, goalID, at); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.ErrGoalAlreadyCompleted
			}
			return err
		}
		return applyStats(ctx, r, userID, 0, -1, 0)
	})
	if err != nil {
		return models.Goal{}, err
	}

	g.Status = models.StatusCompleted
	g.Completed = true
	g.CompletedDate = &at
	if err := s.enc.DecryptGoal(&g); err != nil {
		return models.Goal{}, fmt.Errorf("decrypt goal: %w", err)
	}
	s.metrics.RecordGoalCompleted(g.XP)
	s.log.Info("goal completed", zap.Int64("user_id", userID), zap.Int64("goal_id", goalID))
	return g, nil
}

// Summary returns the cached counters, rebuilding them when none are stored.
func (s *GoalService) Summary(ctx context.Context, userID int64) (models.UserStats, error) {
	st, err := s.store.Stats().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return s.RebuildStats(ctx, userID)
	}
	return st, err
}

// RebuildStats recomputes the counters from the user's goals and stores them.
func (s *GoalService) RebuildStats(ctx context.Context, userID int64) (models.UserStats, error) {
	var st models.UserStats
	err := s.store.WithinTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if _, err := r.Users().GetByID(ctx, userID); err != nil {
			return userErr(err)
		}
		goals, err := r.Goals().ListByUser(ctx, userID, 0)
		if err != nil {
			return err
		}
		st = models.StatsFromGoals(userID, goals)
		return r.Stats().Put(ctx, st)
	})
	if err != nil {
		return models.UserStats{}, err
	}
	return st, nil
}

// Dashboard derives the profile statistics and activity feed from all goals.
func (s *GoalService) Dashboard(ctx context.Context, userID int64, today time.Time) (Stats, []Activity, error) {
	goals, err := s.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, nil, err
	}
	return ComputeStats(goals, today), RecentActivity(goals, DefaultRecentLimit), nil
}

// XPPreview is the base reward shown while a difficulty is being chosen.
// An unset difficulty previews DefaultXP.
func (s *GoalService) XPPreview(difficulty string) (int, error) {
	d := models.Difficulty(difficulty)
	if d != "" && !d.Valid() {
		return 0, models.ErrInvalidDifficulty
	}
	return models.BaseXP(d), nil
}

// applyStats adds the deltas to the stats row, or rebuilds the row from the
// goals already written in this transaction when it does not exist yet.
func applyStats(ctx context.Context, r store.Repositories, userID int64, goals, active, xp int) error {
	_, err := r.Stats().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		all, err := r.Goals().ListByUser(ctx, userID, 0)
		if err != nil {
			return err
		}
		return r.Stats().Put(ctx, models.StatsFromGoals(userID, all))
	}
	if err != nil {
		return err
	}
	return r.Stats().Apply(ctx, userID, goals, active, xp)
}

func userErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return models.ErrUserNotFound
	}
	return err
}
