package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-backend/internal/domain"
)

// frozenClock returns the same instant until advanced.
type frozenClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFrozenClock() *frozenClock {
	return &frozenClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *frozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *frozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleEntry(profileID int64, date string) domain.NewTradeEntry {
	return domain.NewTradeEntry{
		TraderProfileID: profileID,
		Date:            day(date),
		TradingSession:  domain.SessionLondonOpen,
		AssetTraded:     "EURUSD",
		SetupQuality:    domain.SetupA,
		RiskPercentage:  1.5,
		PnlAmount:       "120.00",
		TradeStatus:     domain.StatusWin,
		StrategyUsed:    "Breakout",
		TradingEmotion:  domain.EmotionConfident,
	}
}

func TestCreateThenGetTradeEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFrozenClock()
	store := NewInMemoryStore(WithClock(clock.Now))

	in := sampleEntry(1, "2024-05-01")
	created, err := store.CreateTradeEntry(ctx, in)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	got, err := store.GetTradeEntry(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
	assert.Equal(t, in.AssetTraded, got.AssetTraded)
	assert.Equal(t, in.Date, got.Date)
	assert.Equal(t, "", got.Comments)
	assert.Equal(t, clock.Now(), got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestReadsReturnCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	created, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-01"))
	require.NoError(t, err)
	created.AssetTraded = "changed"

	got, err := store.GetTradeEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", got.AssetTraded)

	email := "a@example.com"
	u, err := store.CreateUser(ctx, domain.NewUser{Username: "ana", Email: &email})
	require.NoError(t, err)
	*u.Email = "mutated@example.com"
	email = "also-mutated"

	again, err := store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", *again.Email)
}

func TestUpdateMissingReturnsNil(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	_, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-01"))
	require.NoError(t, err)

	got, err := store.UpdateTradeEntry(ctx, 42, domain.TradeEntryPatch{Comments: domain.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, store.TradeEntryCount())

	p, err := store.UpdateTraderProfile(ctx, 42, domain.TraderProfilePatch{IsPro: domain.Ptr(true)})
	require.NoError(t, err)
	assert.Nil(t, p)

	u, err := store.UpdateUser(ctx, 42, domain.UserPatch{Username: domain.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateMergesAndAdvancesUpdatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFrozenClock()
	store := NewInMemoryStore(WithClock(clock.Now))

	before, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-01"))
	require.NoError(t, err)

	// The clock does not move; updatedAt still has to.
	after, err := store.UpdateTradeEntry(ctx, before.ID, domain.TradeEntryPatch{
		Comments:    domain.Ptr("moved stop to breakeven"),
		TradeStatus: domain.Ptr(domain.StatusBreakeven),
	})
	require.NoError(t, err)
	require.NotNil(t, after)

	expected := *before
	expected.Comments = "moved stop to breakeven"
	expected.TradeStatus = domain.StatusBreakeven
	expected.UpdatedAt = after.UpdatedAt
	assert.Equal(t, expected, *after)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	clock.Advance(time.Hour)
	later, err := store.UpdateTradeEntry(ctx, before.ID, domain.TradeEntryPatch{})
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), later.UpdatedAt)
}

func TestDeleteTradeEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	a, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-01"))
	require.NoError(t, err)
	_, err = store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-02"))
	require.NoError(t, err)

	removed, err := store.DeleteTradeEntry(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, store.TradeEntryCount())

	got, err := store.GetTradeEntry(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = store.DeleteTradeEntry(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.DeleteTradeEntry(ctx, 999)
	require.NoError(t, err)
	assert.False(t, removed)

	// Ids are never reused after a delete.
	c, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-05-03"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}

func TestTradeEntriesSortedByDateDescending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		_, err := store.CreateTradeEntry(ctx, sampleEntry(7, d))
		require.NoError(t, err)
	}
	_, err := store.CreateTradeEntry(ctx, sampleEntry(8, "2024-01-05"))
	require.NoError(t, err)

	entries, err := store.GetTradeEntriesByProfileID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date.Format("01-02"))
	}
	assert.Equal(t, []string{"01-03", "01-02", "01-01"}, dates)

	empty, err := store.GetTradeEntriesByProfileID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTradeEntriesWithEqualDatesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	var ids []int64
	for i := 0; i < 5; i++ {
		e, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-02-01"))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	entries, err := store.GetTradeEntriesByProfileID(ctx, 1)
	require.NoError(t, err)

	var got []int64
	for _, e := range entries {
		got = append(got, e.ID)
	}
	assert.Equal(t, ids, got)
}

func TestUserUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	_, err := store.CreateUser(ctx, domain.NewUser{Username: "ana", FirebaseID: domain.Ptr("fb-1")})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, domain.NewUser{Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	_, err = store.CreateUser(ctx, domain.NewUser{Username: "bo", FirebaseID: domain.Ptr("fb-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateFirebaseID)

	bo, err := store.CreateUser(ctx, domain.NewUser{Username: "bo"})
	require.NoError(t, err)
	assert.Equal(t, domain.PasswordExternalAuth, bo.Password)
	assert.Equal(t, 2, store.UserCount())

	_, err = store.UpdateUser(ctx, bo.ID, domain.UserPatch{FirebaseID: domain.NullOf("fb-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateFirebaseID)

	_, err = store.UpdateUser(ctx, bo.ID, domain.UserPatch{Username: domain.Ptr("ana")})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// Renaming to the current name is not a conflict with itself.
	same, err := store.UpdateUser(ctx, bo.ID, domain.UserPatch{Username: domain.Ptr("bo")})
	require.NoError(t, err)
	assert.Equal(t, "bo", same.Username)
}

func TestUserFinders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	ana, err := store.CreateUser(ctx, domain.NewUser{
		Username:   "ana",
		Email:      domain.Ptr("shared@example.com"),
		FirebaseID: domain.Ptr("fb-ana"),
	})
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, domain.NewUser{Username: "bo", Email: domain.Ptr("shared@example.com")})
	require.NoError(t, err)

	byName, err := store.GetUserByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, byName.ID)

	byFirebase, err := store.GetUserByFirebaseID(ctx, "fb-ana")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, byFirebase.ID)

	byEmail, err := store.GetUserByEmail(ctx, "shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, byEmail.ID)

	missing, err := store.GetUserByFirebaseID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTraderProfileLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFrozenClock()
	store := NewInMemoryStore(WithClock(clock.Now))

	p, err := store.CreateTraderProfile(ctx, domain.NewTraderProfile{UserID: 1, InitialCapital: "1000"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultJournalName, p.JournalName)
	assert.False(t, p.IsPro)
	assert.Nil(t, p.ProSince)

	_, err = store.CreateTraderProfile(ctx, domain.NewTraderProfile{UserID: 1, InitialCapital: "50"})
	assert.ErrorIs(t, err, domain.ErrProfileExists)
	assert.Equal(t, 1, store.TraderProfileCount())

	byUser, err := store.GetTraderProfileByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byUser.ID)

	clock.Advance(time.Minute)
	since := clock.Now()
	upgraded, err := store.UpdateTraderProfile(ctx, p.ID, domain.TraderProfilePatch{
		IsPro:    domain.Ptr(true),
		ProSince: domain.NullOf(since),
	})
	require.NoError(t, err)
	assert.True(t, upgraded.IsPro)
	require.NotNil(t, upgraded.ProSince)
	assert.Equal(t, since, *upgraded.ProSince)
	assert.Equal(t, p.CreatedAt, upgraded.CreatedAt)
	assert.True(t, upgraded.UpdatedAt.After(p.UpdatedAt))

	other, err := store.CreateTraderProfile(ctx, domain.NewTraderProfile{UserID: 2, InitialCapital: "1"})
	require.NoError(t, err)
	_, err = store.UpdateTraderProfile(ctx, other.ID, domain.TraderProfilePatch{UserID: domain.Ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrProfileExists)
}

func TestConcurrentCreatesAssignDistinctIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := store.CreateTradeEntry(ctx, sampleEntry(1, "2024-03-01"))
			if err == nil {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
