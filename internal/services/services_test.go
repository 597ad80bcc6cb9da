package services

import (
	"context"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillup/internal/models"
	"skillup/internal/password"
	"skillup/internal/store"
)

const strongPassword = "Str0ng!Pass"

var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *store.MemoryStore
	accounts *AccountService
	goals    *GoalService
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	enc, err := NewEncryptionService([]byte(strings.Repeat("k", 32)), []byte(strings.Repeat("b", 32)))
	require.NoError(t, err)

	st := store.NewMemoryStore()
	clock := testNow
	goals := NewGoalService(st, enc, nil, nil, time.UTC)
	goals.now = func() time.Time { return clock }

	return &fixture{
		store:    st,
		accounts: NewAccountService(st, enc, password.NewBcryptHasher(4), nil, nil),
		goals:    goals,
		clock:    &clock,
	}
}

func (f *fixture) register(t *testing.T, email string) models.User {
	t.Helper()
	u, err := f.accounts.Register(context.Background(), "Ana", email, strongPassword)
	require.NoError(t, err)
	return u
}

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestScenario_AnaLearnsRust(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := f.register(t, "ana@x.com")
	assert.Equal(t, "ana@x.com", u.Email)

	g, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{
		Title: "Learn Rust", Category: "coding", Difficulty: "hard",
		Deadline: day(1), Description: "ownership",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, g.XP)
	assert.Equal(t, models.StatusActive, g.Status)
	assert.False(t, g.Completed)

	recent, err := f.goals.ListRecent(ctx, u.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, recent)
	assert.Equal(t, g.ID, recent[0].ID)
	assert.Equal(t, "ownership", recent[0].Description)

	all, err := f.goals.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	s := ComputeStats(all, f.goals.Today())
	assert.Equal(t, 1, s.TotalGoals)
	assert.Equal(t, 0, s.CompletedGoals)
	assert.Equal(t, 200, s.TotalXP)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0.0, s.GoalsProgressPct)

	_, err = f.goals.CompleteGoal(ctx, u.ID, g.ID)
	require.NoError(t, err)
	all, _ = f.goals.ListByUser(ctx, u.ID)
	s = ComputeStats(all, f.goals.Today())
	assert.Equal(t, 1, s.CompletedGoals)
	assert.Equal(t, 100.0, s.GoalsProgressPct)
	assert.Equal(t, 1, s.Streak)
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "ana@x.com")

	_, err := f.accounts.Register(ctx, "Other", "  ANA@X.com ", strongPassword)
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestRegister_InvalidEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Register(context.Background(), "Ana", "", strongPassword)
	assert.ErrorIs(t, err, models.ErrMissingEmail)
	_, err = f.accounts.Register(context.Background(), "Ana", "not-an-email", strongPassword)
	assert.ErrorIs(t, err, models.ErrInvalidEmail)
}

func TestRegister_EmailEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	raw, err := f.store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "ana@x.com", raw.Email)
	assert.NotEmpty(t, raw.EmailBlindIndex)
	assert.NotEqual(t, strongPassword, raw.PasswordHash)

	st, err := f.store.Stats().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{UserID: u.ID}, st)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	got, err := f.accounts.Authenticate(ctx, "Ana@X.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ana@x.com", got.Email)

	_, err = f.accounts.Authenticate(ctx, "ana@x.com", "Wr0ng!Pass")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = f.accounts.Authenticate(ctx, "bob@x.com", strongPassword)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestCreateGoal_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	valid := GoalInput{Title: "Learn Rust", Category: "coding", Difficulty: "hard", Deadline: day(1)}
	with := func(mod func(*GoalInput)) GoalInput {
		in := valid
		mod(&in)
		return in
	}

	tests := []struct {
		name string
		in   GoalInput
		want error
	}{
		{"empty title", with(func(in *GoalInput) { in.Title = "   " }), models.ErrEmptyTitle},
		{"markup only title", with(func(in *GoalInput) { in.Title = "<b></b>" }), models.ErrEmptyTitle},
		{"missing category", with(func(in *GoalInput) { in.Category = "" }), models.ErrMissingCategory},
		{"unknown category", with(func(in *GoalInput) { in.Category = "cooking" }), models.ErrInvalidCategory},
		{"missing difficulty", with(func(in *GoalInput) { in.Difficulty = "" }), models.ErrMissingDifficulty},
		{"unknown difficulty", with(func(in *GoalInput) { in.Difficulty = "legendary" }), models.ErrInvalidDifficulty},
		{"missing deadline", with(func(in *GoalInput) { in.Deadline = "" }), models.ErrMissingDeadline},
		{"bad deadline", with(func(in *GoalInput) { in.Deadline = "10/03/2025" }), models.ErrInvalidDeadline},
		{"deadline today", with(func(in *GoalInput) { in.Deadline = day(0) }), models.ErrPastDeadline},
		{"deadline yesterday", with(func(in *GoalInput) { in.Deadline = day(-1) }), models.ErrPastDeadline},
		{"title checked first", GoalInput{}, models.ErrEmptyTitle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.goals.CreateGoal(ctx, u.ID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	goals, err := f.goals.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
	st, _ := f.goals.Summary(ctx, u.ID)
	assert.Equal(t, models.UserStats{UserID: u.ID}, st)
}

func TestCreateGoal_TomorrowLateEvening(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	*f.clock = time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "t", Category: "writing", Difficulty: "easy", Deadline: "2025-03-11"})
	assert.NoError(t, err)
}

func TestCreateGoal_XPAndSanitizing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	long := strings.Repeat("x", 51)
	g, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{
		Title: "<script>alert(1)</script>Public speaking", Category: "communication",
		Difficulty: "medium", Deadline: day(30), Description: "  " + long + "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Public speaking", g.Title)
	assert.Equal(t, long, g.Description)
	assert.Equal(t, 120, g.XP)

	// tags do not count towards the description bonus
	g, err = f.goals.CreateGoal(ctx, u.ID, GoalInput{
		Title: "Budget", Category: "finance", Difficulty: "easy", Deadline: day(30),
		Description: "<p>" + strings.Repeat("y", 45) + "</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, g.XP)
}

func TestCreateGoal_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.goals.CreateGoal(context.Background(), 404, GoalInput{Title: "t", Category: "other", Difficulty: "easy", Deadline: day(2)})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestCompleteGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	other := f.register(t, "bob@x.com")

	g, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "t", Category: "design", Difficulty: "medium", Deadline: day(5)})
	require.NoError(t, err)

	_, err = f.goals.CompleteGoal(ctx, other.ID, g.ID)
	assert.ErrorIs(t, err, models.ErrGoalNotFound)

	done, err := f.goals.CompleteGoal(ctx, u.ID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, testNow, *done.CompletedDate)

	_, err = f.goals.CompleteGoal(ctx, u.ID, g.ID)
	assert.ErrorIs(t, err, models.ErrGoalAlreadyCompleted)

	st, err := f.goals.Summary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{UserID: u.ID, TotalGoals: 1, ActiveGoals: 0, TotalXP: 100}, st)
}

func TestStatsStayConsistent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	var ids []int64
	for i, d := range []string{"easy", "medium", "hard", "hard", "easy"} {
		*f.clock = f.clock.Add(time.Hour)
		g, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{
			Title: "goal", Category: "coding", Difficulty: d, Deadline: day(3 + i),
			Description: strings.Repeat("d", 40+i*5),
		})
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}
	for _, id := range ids[1:3] {
		_, err := f.goals.CompleteGoal(ctx, u.ID, id)
		require.NoError(t, err)
	}

	cached, err := f.goals.Summary(ctx, u.ID)
	require.NoError(t, err)
	rebuilt, err := f.goals.RebuildStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, rebuilt, cached)
	assert.Equal(t, 5, cached.TotalGoals)
	assert.Equal(t, 3, cached.ActiveGoals)
}

func TestSummary_RebuildsMissingStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "t", Category: "coding", Difficulty: "hard", Deadline: day(3)})
	require.NoError(t, err)

	require.NoError(t, f.store.Stats().Delete(ctx, u.ID))
	st, err := f.goals.Summary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{UserID: u.ID, TotalGoals: 1, ActiveGoals: 1, TotalXP: 200}, st)

	_, err = f.goals.Summary(ctx, 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStatsAreNamespacedPerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.register(t, "ana@x.com")
	bob := f.register(t, "bob@x.com")

	_, err := f.goals.CreateGoal(ctx, ana.ID, GoalInput{Title: "t", Category: "coding", Difficulty: "hard", Deadline: day(3)})
	require.NoError(t, err)

	st, err := f.goals.Summary(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, st.TotalGoals)
	goals, err := f.goals.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestListRecent_Limit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	for i := 0; i < 7; i++ {
		*f.clock = f.clock.Add(time.Minute)
		_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "t", Category: "coding", Difficulty: "easy", Deadline: day(2)})
		require.NoError(t, err)
	}
	recent, err := f.goals.ListRecent(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, int64(7), recent[0].ID)

	recent, err = f.goals.ListRecent(ctx, u.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestXPPreview(t *testing.T) {
	f := newFixture(t)
	for d, want := range map[string]int{"": 100, "easy": 50, "medium": 100, "hard": 200} {
		got, err := f.goals.XPPreview(d)
		require.NoError(t, err)
		assert.Equal(t, want, got, d)
	}
	_, err := f.goals.XPPreview("epic")
	assert.ErrorIs(t, err, models.ErrInvalidDifficulty)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "Learn Rust", Category: "coding", Difficulty: "hard", Deadline: day(3)})
	require.NoError(t, err)

	stats, activity, err := f.goals.Dashboard(ctx, u.ID, f.goals.Today())
	require.NoError(t, err)
	assert.Equal(t, 200, stats.TotalXP)
	assert.Equal(t, 1, stats.Streak)
	require.Len(t, activity, 1)
	assert.Equal(t, "Learn Rust", activity[0].Title)
	assert.Equal(t, 200, activity[0].XP)
}

func TestDashboard_StreakInClientZone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	// 18:00 on the 16th in Los Angeles
	*f.clock = time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)
	_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "Evening goal", Category: "coding", Difficulty: "easy", Deadline: "2026-10-20"})
	require.NoError(t, err)

	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	today, err := time.ParseInLocation("2006-01-02", "2026-10-16", la)
	require.NoError(t, err)

	stats, _, err := f.goals.Dashboard(ctx, u.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Streak)

	utcToday := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	stats, _, err = f.goals.Dashboard(ctx, u.ID, utcToday)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Streak)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	completed := testNow.AddDate(0, 0, -2)

	res, err := f.goals.Import(ctx, u.ID, ImportPayload{
		Goals: []ImportGoal{
			{
				GoalInput: GoalInput{Title: "Old goal", Category: "writing", Difficulty: "easy", Deadline: day(-10)},
				XP:        70, Status: "completed", CreatedAt: testNow.AddDate(0, -1, 0), CompletedDate: &completed,
			},
			{
				GoalInput: GoalInput{Title: "Legacy", Category: "other", Difficulty: "hard", Deadline: day(4)},
				CreatedAt: testNow.AddDate(0, 0, -1),
			},
		},
		Profile: &models.Profile{Name: "Ana M", Phone: "+351 900", Bio: "learner"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.GoalsImported)
	assert.True(t, res.ProfileImported)
	assert.Equal(t, models.UserStats{UserID: u.ID, TotalGoals: 2, ActiveGoals: 1, TotalXP: 270}, res.Stats)

	goals, err := f.goals.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Legacy", goals[0].Title)
	assert.Equal(t, 200, goals[0].XP)
	assert.Equal(t, models.StatusCompleted, goals[1].Status)
	assert.True(t, goals[1].Completed)
	assert.Equal(t, completed, *goals[1].CompletedDate)

	p, err := f.accounts.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "+351 900", p.Phone)
	assert.Equal(t, DefaultVisibility, p.ProfileVisibility)
}

func TestImport_InvalidGoalWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	_, err := f.goals.Import(ctx, u.ID, ImportPayload{Goals: []ImportGoal{
		{GoalInput: GoalInput{Title: "ok", Category: "coding", Difficulty: "easy", Deadline: day(1)}},
		{GoalInput: GoalInput{Title: "bad", Category: "coding", Difficulty: "easy", Deadline: day(1)}, Status: "archived"},
	}})
	assert.ErrorIs(t, err, models.ErrInvalidImport)

	goals, _ := f.goals.ListByUser(ctx, u.ID)
	assert.Empty(t, goals)

	_, err = f.goals.Import(ctx, u.ID, ImportPayload{})
	assert.ErrorIs(t, err, models.ErrEmptyImport)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")

	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, u.ID, "Wr0ng!Pass", "N3w!Passw0rd"), models.ErrWrongPassword)
	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, u.ID, strongPassword, "abc"), models.ErrPasswordTooShort)
	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, u.ID, strongPassword, "alllowercase1!"), models.ErrWeakPassword)
	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, 999, strongPassword, "N3w!Passw0rd"), models.ErrUserNotFound)

	require.NoError(t, f.accounts.ChangePassword(ctx, u.ID, strongPassword, "N3w!Passw0rd"))
	_, err := f.accounts.Authenticate(ctx, "ana@x.com", strongPassword)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = f.accounts.Authenticate(ctx, "ana@x.com", "N3w!Passw0rd")
	assert.NoError(t, err)

	// surrounding spaces are trimmed on both sides
	require.NoError(t, f.accounts.ChangePassword(ctx, u.ID, " N3w!Passw0rd", "Padd3d!Pass  "))
	_, err = f.accounts.Authenticate(ctx, "ana@x.com", "Padd3d!Pass")
	assert.NoError(t, err)
}

func TestRegister_TrimsPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.accounts.Register(ctx, "Ana", "ana@x.com", " "+strongPassword+" ")
	require.NoError(t, err)

	_, err = f.accounts.Authenticate(ctx, "ana@x.com", strongPassword)
	assert.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, "ana@x.com", " "+strongPassword)
	assert.NoError(t, err)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Register(context.Background(), "Ana", "ana@x.com", "Aa1!"+strings.Repeat("x", 80))
	assert.ErrorIs(t, err, models.ErrPasswordTooLong)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	_, err := f.goals.CreateGoal(ctx, u.ID, GoalInput{Title: "t", Category: "coding", Difficulty: "easy", Deadline: day(1)})
	require.NoError(t, err)
	_, err = f.accounts.SaveProfile(ctx, u.ID, models.Profile{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, u.ID))

	_, err = f.accounts.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	goals, _ := f.store.Goals().ListByUser(ctx, u.ID, 0)
	assert.Empty(t, goals)
	_, err = f.store.Profiles().Get(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, f.accounts.DeleteAccount(ctx, u.ID), models.ErrUserNotFound)
	f.register(t, "ana@x.com")
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "ana@x.com")
	bob := f.register(t, "bob@x.com")

	p, err := f.accounts.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@x.com", p.Email)
	assert.True(t, p.EmailNotifications)
	assert.Equal(t, DefaultVisibility, p.ProfileVisibility)

	_, err = f.accounts.SaveProfile(ctx, u.ID, models.Profile{Name: "Ana", Email: "BOB@x.com"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)

	saved, err := f.accounts.SaveProfile(ctx, u.ID, models.Profile{
		Name: "Ana Maria", Email: " Ana.Maria@X.com ", Phone: "123", Location: "Lisbon",
		Bio: "<i>hi</i>", Website: "https://ana.dev", ProfileVisibility: "private",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana.maria@x.com", saved.Email)
	assert.Equal(t, "hi", saved.Bio)
	assert.False(t, saved.EmailNotifications)

	user, err := f.accounts.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)
	assert.Equal(t, "ana.maria@x.com", user.Email)

	_, err = f.accounts.Authenticate(ctx, "ana.maria@x.com", strongPassword)
	assert.NoError(t, err)
	_, err = f.accounts.Register(ctx, "New", "ana@x.com", strongPassword)
	assert.NoError(t, err, "old email is free again")

	raw, err := f.store.Profiles().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Lisbon", raw.Location)

	require.NoError(t, f.accounts.SetNotifications(ctx, u.ID, true))
	stored, err := f.accounts.SetVisibility(ctx, u.ID, " <b>friends</b> ")
	require.NoError(t, err)
	assert.Equal(t, "friends", stored)
	_, err = f.accounts.SetVisibility(ctx, u.ID, "  ")
	assert.ErrorIs(t, err, models.ErrInvalidVisibility)
	_, err = f.accounts.SetVisibility(ctx, 999, "public")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	p, err = f.accounts.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.EmailNotifications)
	assert.Equal(t, "friends", p.ProfileVisibility)
	assert.Equal(t, "Lisbon", p.Location)

	_, err = f.accounts.GetProfile(ctx, bob.ID)
	assert.NoError(t, err)
}
