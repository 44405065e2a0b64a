package repository

import (
	"time"

	"journal-backend/internal/domain"
)

// Clock supplies the timestamps stamped on records.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// touch returns the next updatedAt for a record last stamped at prev. The
// result is always strictly after prev, even if the clock has not moved.
func touch(clock Clock, prev time.Time) time.Time {
	now := clock()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

type options struct {
	clock Clock
}

// Option configures a store.
type Option func(*options)

// WithClock replaces the wall clock used for createdAt/updatedAt.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// InMemoryStore keeps every entity in process memory. Each entity type has
// its own lock and identity counter; state is lost when the process exits.
type InMemoryStore struct {
	*InMemoryUserRepository
	*InMemoryTraderProfileRepository
	*InMemoryTradeRepository
}

var _ domain.Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	o := buildOptions(opts)
	return &InMemoryStore{
		InMemoryUserRepository:          NewInMemoryUserRepository(),
		InMemoryTraderProfileRepository: NewInMemoryTraderProfileRepository(o.clock),
		InMemoryTradeRepository:         NewInMemoryTradeRepository(o.clock),
	}
}
