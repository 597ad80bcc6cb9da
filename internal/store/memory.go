package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"skillup/internal/models"
)

// MemoryStore keeps everything in process memory. All operations are
// serialized; a transaction works on a copy that replaces the live state
// only when fn succeeds.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState(), now: time.Now}
}

type memState struct {
	nextUserID int64
	nextGoalID int64
	users      map[int64]models.User
	byIndex    map[string]int64
	profiles   map[int64]models.Profile
	goals      map[int64][]models.Goal
	stats      map[int64]models.UserStats
}

func newMemState() *memState {
	return &memState{
		users:    map[int64]models.User{},
		byIndex:  map[string]int64{},
		profiles: map[int64]models.Profile{},
		goals:    map[int64][]models.Goal{},
		stats:    map[int64]models.UserStats{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		nextUserID: s.nextUserID,
		nextGoalID: s.nextGoalID,
		users:      make(map[int64]models.User, len(s.users)),
		byIndex:    make(map[string]int64, len(s.byIndex)),
		profiles:   make(map[int64]models.Profile, len(s.profiles)),
		goals:      make(map[int64][]models.Goal, len(s.goals)),
		stats:      make(map[int64]models.UserStats, len(s.stats)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.byIndex {
		c.byIndex[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.goals {
		c.goals[k] = append([]models.Goal(nil), v...)
	}
	for k, v := range s.stats {
		c.stats[k] = v
	}
	return c
}

func (m *MemoryStore) locked(fn func(*memState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.state)
}

func (m *MemoryStore) repos() memRepos {
	return memRepos{do: m.locked, now: m.now}
}

func (m *MemoryStore) Users() UserRepository       { return m.repos().Users() }
func (m *MemoryStore) Profiles() ProfileRepository { return m.repos().Profiles() }
func (m *MemoryStore) Goals() GoalRepository       { return m.repos().Goals() }
func (m *MemoryStore) Stats() StatsRepository      { return m.repos().Stats() }

func (m *MemoryStore) Ping(context.Context) error { return nil }

// WithinTx holds the store lock for the whole of fn, so fn must only use the
// repositories it is given.
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	r := memRepos{
		do:  func(f func(*memState) error) error { return f(work) },
		now: m.now,
	}
	if err := fn(ctx, r); err != nil {
		return err
	}
	m.state = work
	return nil
}

type memRepos struct {
	do  func(func(*memState) error) error
	now func() time.Time
}

func (r memRepos) Users() UserRepository       { return memUsers(r) }
func (r memRepos) Profiles() ProfileRepository { return memProfiles(r) }
func (r memRepos) Goals() GoalRepository       { return memGoals(r) }
func (r memRepos) Stats() StatsRepository      { return memStats(r) }

type memUsers memRepos

func (r memUsers) Create(_ context.Context, u *models.User) error {
	return r.do(func(s *memState) error {
		if _, taken := s.byIndex[u.EmailBlindIndex]; taken {
			return ErrDuplicate
		}
		s.nextUserID++
		u.ID = s.nextUserID
		u.CreatedAt = r.now().UTC()
		s.users[u.ID] = *u
		s.byIndex[u.EmailBlindIndex] = u.ID
		return nil
	})
}

func (r memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.do(func(s *memState) error {
		var ok bool
		if u, ok = s.users[id]; !ok {
			return ErrNotFound
		}
		return nil
	})
	return u, err
}

func (r memUsers) GetByEmailIndex(_ context.Context, blindIndex string) (models.User, error) {
	var u models.User
	err := r.do(func(s *memState) error {
		id, ok := s.byIndex[blindIndex]
		if !ok {
			return ErrNotFound
		}
		u = s.users[id]
		return nil
	})
	return u, err
}

func (r memUsers) UpdateIdentity(_ context.Context, id int64, name, email, blindIndex string) error {
	return r.do(func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return ErrNotFound
		}
		if owner, taken := s.byIndex[blindIndex]; taken && owner != id {
			return ErrDuplicate
		}
		delete(s.byIndex, u.EmailBlindIndex)
		u.Name, u.Email, u.EmailBlindIndex = name, email, blindIndex
		s.users[id] = u
		s.byIndex[blindIndex] = id
		return nil
	})
}

func (r memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	return r.do(func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return ErrNotFound
		}
		u.PasswordHash = hash
		s.users[id] = u
		return nil
	})
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	return r.do(func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return ErrNotFound
		}
		delete(s.users, id)
		delete(s.byIndex, u.EmailBlindIndex)
		delete(s.profiles, id)
		delete(s.goals, id)
		delete(s.stats, id)
		return nil
	})
}

type memProfiles memRepos

func defaultProfile(userID int64) models.Profile {
	return models.Profile{UserID: userID, EmailNotifications: true, ProfileVisibility: "public"}
}

func (r memProfiles) Get(_ context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	err := r.do(func(s *memState) error {
		var ok bool
		if p, ok = s.profiles[userID]; !ok {
			return ErrNotFound
		}
		return nil
	})
	return p, err
}

func (r memProfiles) Upsert(_ context.Context, p models.Profile) error {
	return r.do(func(s *memState) error {
		s.profiles[p.UserID] = p
		return nil
	})
}

func (r memProfiles) SetNotifications(_ context.Context, userID int64, enabled bool) error {
	return r.do(func(s *memState) error {
		p, ok := s.profiles[userID]
		if !ok {
			p = defaultProfile(userID)
		}
		p.EmailNotifications = enabled
		s.profiles[userID] = p
		return nil
	})
}

func (r memProfiles) SetVisibility(_ context.Context, userID int64, visibility string) error {
	return r.do(func(s *memState) error {
		p, ok := s.profiles[userID]
		if !ok {
			p = defaultProfile(userID)
		}
		p.ProfileVisibility = visibility
		s.profiles[userID] = p
		return nil
	})
}

func (r memProfiles) Delete(_ context.Context, userID int64) error {
	return r.do(func(s *memState) error {
		delete(s.profiles, userID)
		return nil
	})
}

type memGoals memRepos

func (r memGoals) Create(_ context.Context, g *models.Goal) error {
	return r.do(func(s *memState) error {
		if _, ok := s.users[g.UserID]; !ok {
			return ErrNotFound
		}
		s.nextGoalID++
		g.ID = s.nextGoalID
		if g.CreatedAt.IsZero() {
			g.CreatedAt = r.now().UTC()
		}
		s.goals[g.UserID] = append(s.goals[g.UserID], *g)
		return nil
	})
}

func (r memGoals) Get(_ context.Context, userID, goalID int64) (models.Goal, error) {
	var g models.Goal
	err := r.do(func(s *memState) error {
		for _, cur := range s.goals[userID] {
			if cur.ID == goalID {
				g = cur
				return nil
			}
		}
		return ErrNotFound
	})
	return g, err
}

func (r memGoals) ListByUser(_ context.Context, userID int64, limit int) ([]models.Goal, error) {
	out := []models.Goal{}
	err := r.do(func(s *memState) error {
		out = append(out, s.goals[userID]...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r memGoals) MarkCompleted(_ context.Context, userID, goalID int64, at time.Time) error {
	return r.do(func(s *memState) error {
		goals := s.goals[userID]
		for i := range goals {
			if goals[i].ID != goalID || goals[i].Status != models.StatusActive {
				continue
			}
			done := at
			goals[i].Status = models.StatusCompleted
			goals[i].Completed = true
			goals[i].CompletedDate = &done
			return nil
		}
		return ErrNotFound
	})
}

func (r memGoals) DeleteByUser(_ context.Context, userID int64) error {
	return r.do(func(s *memState) error {
		delete(s.goals, userID)
		return nil
	})
}

type memStats memRepos

func (r memStats) Get(_ context.Context, userID int64) (models.UserStats, error) {
	var st models.UserStats
	err := r.do(func(s *memState) error {
		var ok bool
		if st, ok = s.stats[userID]; !ok {
			return ErrNotFound
		}
		return nil
	})
	return st, err
}

func (r memStats) Apply(_ context.Context, userID int64, goals, active, xp int) error {
	return r.do(func(s *memState) error {
		st := s.stats[userID]
		st.UserID = userID
		st.TotalGoals += goals
		st.ActiveGoals += active
		st.TotalXP += xp
		s.stats[userID] = st
		return nil
	})
}

func (r memStats) Put(_ context.Context, st models.UserStats) error {
	return r.do(func(s *memState) error {
		s.stats[st.UserID] = st
		return nil
	})
}

func (r memStats) Delete(_ context.Context, userID int64) error {
	return r.do(func(s *memState) error {
		delete(s.stats, userID)
		return nil
	})
}
