package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"skillup/internal/db"
	"skillup/internal/models"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	pgRepos
	db *sqlx.DB
}

func NewPostgresStore(conn *sqlx.DB) *PostgresStore {
	return &PostgresStore{pgRepos: pgRepos{q: conn}, db: conn}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return db.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, pgRepos{q: tx})
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// pgRepos binds every repository to q, which is either the pool or a transaction.
type pgRepos struct {
	q sqlx.ExtContext
}

func (r pgRepos) Users() UserRepository       { return pgUsers(r) }
func (r pgRepos) Profiles() ProfileRepository { return pgProfiles(r) }
func (r pgRepos) Goals() GoalRepository       { return pgGoals(r) }
func (r pgRepos) Stats() StatsRepository      { return pgStats(r) }

func dbErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectOne(op string, res sql.Result, err error) error {
	if err != nil {
		return dbErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbErr(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type pgUsers pgRepos

const userColumns = `id, name, email, email_blind_index, password_hash, created_at`

func (r pgUsers) Create(ctx context.Context, u *models.User) error {
	err := r.q.QueryRowxContext(ctx,
		`INSERT INTO users (name, email, email_blind_index, password_hash) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		u.Name, u.Email, u.EmailBlindIndex, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return dbErr("insert user", err)
	}
	return nil
}

func (r pgUsers) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id); err != nil {
		return u, dbErr("get user", err)
	}
	return u, nil
}

func (r pgUsers) GetByEmailIndex(ctx context.Context, blindIndex string) (models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE email_blind_index=$1`, blindIndex); err != nil {
		return u, dbErr("get user by email", err)
	}
	return u, nil
}

func (r pgUsers) UpdateIdentity(ctx context.Context, id int64, name, email, blindIndex string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET name=$1, email=$2, email_blind_index=$3 WHERE id=$4`,
		name, email, blindIndex, id)
	return expectOne("update user", res, err)
}

func (r pgUsers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, hash, id)
	return expectOne("update password", res, err)
}

func (r pgUsers) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return expectOne("delete user", res, err)
}

type pgProfiles pgRepos

func (r pgProfiles) Get(ctx context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	err := sqlx.GetContext(ctx, r.q, &p,
		`SELECT user_id, name, email, phone, location, bio, website, email_notifications, profile_visibility
		 FROM profiles WHERE user_id=$1`, userID)
	if err != nil {
		return p, dbErr("get profile", err)
	}
	return p, nil
}

func (r pgProfiles) Upsert(ctx context.Context, p models.Profile) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, email, phone, location, bio, website, email_notifications, profile_visibility)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		   name = EXCLUDED.name,
		   email = EXCLUDED.email,
		   phone = EXCLUDED.phone,
		   location = EXCLUDED.location,
		   bio = EXCLUDED.bio,
		   website = EXCLUDED.website,
		   email_notifications = EXCLUDED.email_notifications,
		   profile_visibility = EXCLUDED.profile_visibility`,
		p.UserID, p.Name, p.Email, p.Phone, p.Location, p.Bio, p.Website, p.EmailNotifications, p.ProfileVisibility)
	if err != nil {
		return dbErr("upsert profile", err)
	}
	return nil
}

func (r pgProfiles) SetNotifications(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (user_id, email_notifications) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET email_notifications = EXCLUDED.email_notifications`,
		userID, enabled)
	if err != nil {
		return dbErr("set notifications", err)
	}
	return nil
}

func (r pgProfiles) SetVisibility(ctx context.Context, userID int64, visibility string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (user_id, profile_visibility) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET profile_visibility = EXCLUDED.profile_visibility`,
		userID, visibility)
	if err != nil {
		return dbErr("set visibility", err)
	}
	return nil
}

func (r pgProfiles) Delete(ctx context.Context, userID int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM profiles WHERE user_id=$1`, userID); err != nil {
		return dbErr("delete profile", err)
	}
	return nil
}

type pgGoals pgRepos

const goalColumns = `id, user_id, title, category, description, difficulty, deadline, xp, status, completed, completed_date, created_at`

func (r pgGoals) Create(ctx context.Context, g *models.Goal) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowxContext(ctx,
		`INSERT INTO goals (user_id, title, category, description, difficulty, deadline, xp, status, completed, completed_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		g.UserID, g.Title, g.Category, g.Description, g.Difficulty, g.Deadline, g.XP, g.Status, g.Completed, g.CompletedDate, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		return dbErr("insert goal", err)
	}
	return nil
}

func (r pgGoals) Get(ctx context.Context, userID, goalID int64) (models.Goal, error) {
	var g models.Goal
	err := sqlx.GetContext(ctx, r.q, &g, `SELECT `+goalColumns+` FROM goals WHERE id=$1 AND user_id=$2`, goalID, userID)
	if err != nil {
		return g, dbErr("get goal", err)
	}
	return g, nil
}

func (r pgGoals) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	goals := []models.Goal{}
	if err := sqlx.SelectContext(ctx, r.q, &goals, query, args...); err != nil {
		return nil, dbErr("list goals", err)
	}
	return goals, nil
}

func (r pgGoals) MarkCompleted(ctx context.Context, userID, goalID int64, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE goals SET status='completed', completed=true, completed_date=$1
		 WHERE id=$2 AND user_id=$3 AND status='active'`,
		at, goalID, userID)
	return expectOne("complete goal", res, err)
}

func (r pgGoals) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM goals WHERE user_id=$1`, userID); err != nil {
		return dbErr("delete goals", err)
	}
	return nil
}

type pgStats pgRepos

func (r pgStats) Get(ctx context.Context, userID int64) (models.UserStats, error) {
	var s models.UserStats
	err := sqlx.GetContext(ctx, r.q, &s,
		`SELECT user_id, total_goals, active_goals, total_xp FROM user_stats WHERE user_id=$1`, userID)
	if err != nil {
		return s, dbErr("get stats", err)
	}
	return s, nil
}

func (r pgStats) Apply(ctx context.Context, userID int64, goals, active, xp int) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, total_goals, active_goals, total_xp) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		   total_goals = user_stats.total_goals + EXCLUDED.total_goals,
		   active_goals = user_stats.active_goals + EXCLUDED.active_goals,
		   total_xp = user_stats.total_xp + EXCLUDED.total_xp`,
		userID, goals, active, xp)
	if err != nil {
		return dbErr("apply stats", err)
	}
	return nil
}

func (r pgStats) Put(ctx context.Context, s models.UserStats) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, total_goals, active_goals, total_xp) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		   total_goals = EXCLUDED.total_goals,
		   active_goals = EXCLUDED.active_goals,
		   total_xp = EXCLUDED.total_xp`,
		s.UserID, s.TotalGoals, s.ActiveGoals, s.TotalXP)
	if err != nil {
		return dbErr("put stats", err)
	}
	return nil
}

func (r pgStats) Delete(ctx context.Context, userID int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM user_stats WHERE user_id=$1`, userID); err != nil {
		return dbErr("delete stats", err)
	}
	return nil
}
