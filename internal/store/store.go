// Package store persists users, profiles, goals and the per-user stats cache.
// PostgresStore is used when a database is configured; MemoryStore otherwise.
package store

import (
	"context"
	"errors"
	"time"

	"skillup/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type UserRepository interface {
	// Create inserts u and fills in ID and CreatedAt. ErrDuplicate when the
	// email blind index is taken.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmailIndex(ctx context.Context, blindIndex string) (models.User, error)
	UpdateIdentity(ctx context.Context, id int64, name, email, blindIndex string) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (models.Profile, error)
	Upsert(ctx context.Context, p models.Profile) error
	SetNotifications(ctx context.Context, userID int64, enabled bool) error
	SetVisibility(ctx context.Context, userID int64, visibility string) error
	Delete(ctx context.Context, userID int64) error
}

type GoalRepository interface {
	// Create inserts g and fills in ID (and CreatedAt when zero).
	Create(ctx context.Context, g *models.Goal) error
	Get(ctx context.Context, userID, goalID int64) (models.Goal, error)
	// ListByUser returns goals most recent first. limit <= 0 returns all.
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Goal, error)
	// MarkCompleted flips an active goal to completed. ErrNotFound when no
	// active goal matches.
	MarkCompleted(ctx context.Context, userID, goalID int64, at time.Time) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type StatsRepository interface {
	Get(ctx context.Context, userID int64) (models.UserStats, error)
	// Apply adds the deltas to the user's counters, creating the row if needed.
	Apply(ctx context.Context, userID int64, goals, active, xp int) error
	Put(ctx context.Context, s models.UserStats) error
	Delete(ctx context.Context, userID int64) error
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Goals() GoalRepository
	Stats() StatsRepository
}

type Store interface {
	Repositories
	// WithinTx runs fn against repositories bound to a single transaction.
	// Nothing fn wrote is visible if it returns an error.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Ping(ctx context.Context) error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
