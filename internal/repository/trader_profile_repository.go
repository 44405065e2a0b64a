package repository

import (
	"context"
	"sync"

	"journal-backend/internal/domain"
)

// InMemoryTraderProfileRepository stores trader profiles in memory
type InMemoryTraderProfileRepository struct {
	mu       sync.RWMutex
	profiles map[int64]*domain.TraderProfile
	nextID   int64
	clock    Clock
}

// NewInMemoryTraderProfileRepository creates a new in-memory profile repository
func NewInMemoryTraderProfileRepository(clock Clock) *InMemoryTraderProfileRepository {
	if clock == nil {
		clock = systemClock
	}
	return &InMemoryTraderProfileRepository{
		profiles: make(map[int64]*domain.TraderProfile),
		nextID:   1,
		clock:    clock,
	}
}

func (r *InMemoryTraderProfileRepository) GetTraderProfile(_ context.Context, id int64) (*domain.TraderProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	out := p.Clone()
	return &out, nil
}

// GetTraderProfileByUserID returns the profile owned by userID, or nil.
func (r *InMemoryTraderProfileRepository) GetTraderProfileByUserID(_ context.Context, userID int64) (*domain.TraderProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.byUserLocked(userID, 0)
	if p == nil {
		return nil, nil
	}
	out := p.Clone()
	return &out, nil
}

// CreateTraderProfile stores a new profile. A user may own only one.
func (r *InMemoryTraderProfileRepository) CreateTraderProfile(_ context.Context, in domain.NewTraderProfile) (*domain.TraderProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byUserLocked(in.UserID, 0) != nil {
		return nil, domain.ErrProfileExists
	}

	now := r.clock()
	p := &domain.TraderProfile{
		ID:             r.nextID,
		UserID:         in.UserID,
		JournalName:    in.JournalName,
		InitialCapital: in.InitialCapital,
		Strategy1:      in.Strategy1,
		Strategy2:      in.Strategy2,
		Strategy3:      in.Strategy3,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.JournalName == "" {
		p.JournalName = domain.DefaultJournalName
	}

	r.nextID++
	r.profiles[p.ID] = p

	out := p.Clone()
	return &out, nil
}

// UpdateTraderProfile merges patch over the stored profile and refreshes
// updatedAt. A missing id yields nil.
func (r *InMemoryTraderProfileRepository) UpdateTraderProfile(_ context.Context, id int64, patch domain.TraderProfilePatch) (*domain.TraderProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}

	p := existing.Clone()
	patch.Apply(&p)
	if p.UserID != existing.UserID && r.byUserLocked(p.UserID, id) != nil {
		return nil, domain.ErrProfileExists
	}
	p.UpdatedAt = touch(r.clock, existing.UpdatedAt)
	r.profiles[id] = &p

	out := p.Clone()
	return &out, nil
}

// TraderProfileCount returns the number of stored profiles.
func (r *InMemoryTraderProfileRepository) TraderProfileCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// byUserLocked returns the lowest-id profile of userID other than skip.
func (r *InMemoryTraderProfileRepository) byUserLocked(userID, skip int64) *domain.TraderProfile {
	var hit *domain.TraderProfile
	for id, p := range r.profiles {
		if id == skip || p.UserID != userID {
			continue
		}
		if hit == nil || p.ID < hit.ID {
			hit = p
		}
	}
	return hit
}
