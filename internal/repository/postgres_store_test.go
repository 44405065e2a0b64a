package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-backend/internal/domain"
	"journal-backend/internal/infrastructure/db"
)

// openPostgresStore connects to JOURNAL_TEST_DATABASE_URL and skips the test
// when it is unset. Tables are truncated before use.
func openPostgresStore(t *testing.T, opts ...Option) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("JOURNAL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("JOURNAL_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, dsn, db.DefaultPoolConfig())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `truncate users, trader_profiles, trade_entries restart identity`)
	require.NoError(t, err)

	return NewPostgresStore(pool, opts...)
}

// The Postgres tests share one database and therefore do not run in parallel.
func TestPostgresStoreTradeEntries(t *testing.T) {
	ctx := context.Background()
	clock := newFrozenClock()
	store := openPostgresStore(t, WithClock(clock.Now))

	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		_, err := store.CreateTradeEntry(ctx, sampleEntry(1, d))
		require.NoError(t, err)
	}

	entries, err := store.GetTradeEntriesByProfileID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-01-03", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-01-01", entries[2].Date.Format("2006-01-02"))
	assert.Equal(t, "120.00", entries[0].PnlAmount)
	assert.Equal(t, domain.SessionLondonOpen, entries[0].TradingSession)

	first := entries[0]
	updated, err := store.UpdateTradeEntry(ctx, first.ID, domain.TradeEntryPatch{Comments: domain.Ptr("ok")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "ok", updated.Comments)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	missing, err := store.UpdateTradeEntry(ctx, 9999, domain.TradeEntryPatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	removed, err := store.DeleteTradeEntry(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.DeleteTradeEntry(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPostgresStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStore(t)

	u, err := store.CreateUser(ctx, domain.NewUser{Username: "ana", FirebaseID: domain.Ptr("fb-1")})
	require.NoError(t, err)
	assert.Equal(t, domain.PasswordExternalAuth, u.Password)

	_, err = store.CreateUser(ctx, domain.NewUser{Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	_, err = store.CreateUser(ctx, domain.NewUser{Username: "bo", FirebaseID: domain.Ptr("fb-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateFirebaseID)

	for i := 0; i < 2; i++ {
		_, err = store.CreateUser(ctx, domain.NewUser{Username: fmt.Sprintf("anon-%d", i)})
		require.NoError(t, err, "null firebase ids do not collide")
	}

	p, err := store.CreateTraderProfile(ctx, domain.NewTraderProfile{UserID: u.ID, InitialCapital: "1000"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultJournalName, p.JournalName)
	assert.Equal(t, "1000", p.InitialCapital)

	_, err = store.CreateTraderProfile(ctx, domain.NewTraderProfile{UserID: u.ID, InitialCapital: "5"})
	assert.ErrorIs(t, err, domain.ErrProfileExists)

	byUser, err := store.GetTraderProfileByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byUser.ID)
}
