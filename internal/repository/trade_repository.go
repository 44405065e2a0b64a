package repository

import (
	"context"
	"sort"
	"sync"

	"journal-backend/internal/domain"
)

// InMemoryTradeRepository stores trade entries in memory
type InMemoryTradeRepository struct {
	mu      sync.RWMutex
	entries map[int64]*domain.TradeEntry
	nextID  int64
	clock   Clock
}

// NewInMemoryTradeRepository creates a new in-memory trade repository
func NewInMemoryTradeRepository(clock Clock) *InMemoryTradeRepository {
	if clock == nil {
		clock = systemClock
	}
	return &InMemoryTradeRepository{
		entries: make(map[int64]*domain.TradeEntry),
		nextID:  1,
		clock:   clock,
	}
}

// GetTradeEntry retrieves an entry by id, or nil.
func (r *InMemoryTradeRepository) GetTradeEntry(_ context.Context, id int64) (*domain.TradeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	out := *e
	return &out, nil
}

// GetTradeEntriesByProfileID returns every entry of a profile, newest date
// first. Entries sharing a date come back in id order.
func (r *InMemoryTradeRepository) GetTradeEntriesByProfileID(_ context.Context, profileID int64) ([]domain.TradeEntry, error) {
	r.mu.RLock()
	result := make([]domain.TradeEntry, 0)
	for _, e := range r.entries {
		if e.TraderProfileID == profileID {
			result = append(result, *e)
		}
	}
	r.mu.RUnlock()

	sortEntries(result)
	return result, nil
}

func sortEntries(entries []domain.TradeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}

// CreateTradeEntry assigns the next id and stamps the entry.
func (r *InMemoryTradeRepository) CreateTradeEntry(_ context.Context, in domain.NewTradeEntry) (*domain.TradeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	e := &domain.TradeEntry{
		ID:              r.nextID,
		TraderProfileID: in.TraderProfileID,
		Date:            in.Date,
		TradingDay:      in.TradingDay,
		TradingSession:  in.TradingSession,
		AssetTraded:     in.AssetTraded,
		SetupQuality:    in.SetupQuality,
		RiskPercentage:  in.RiskPercentage,
		RiskRewardRatio: in.RiskRewardRatio,
		PnlAmount:       in.PnlAmount,
		TradeStatus:     in.TradeStatus,
		StrategyUsed:    in.StrategyUsed,
		TradingEmotion:  in.TradingEmotion,
		ChartImage:      in.ChartImage,
		Comments:        in.Comments,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	r.nextID++
	r.entries[e.ID] = e

	out := *e
	return &out, nil
}

// UpdateTradeEntry merges patch over an existing entry. A missing id yields nil.
func (r *InMemoryTradeRepository) UpdateTradeEntry(_ context.Context, id int64, patch domain.TradeEntryPatch) (*domain.TradeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[id]
	if !ok {
		return nil, nil
	}

	e := *existing
	patch.Apply(&e)
	e.UpdatedAt = touch(r.clock, existing.UpdatedAt)
	r.entries[id] = &e

	out := e
	return &out, nil
}

// DeleteTradeEntry removes an entry and reports whether it existed.
func (r *InMemoryTradeRepository) DeleteTradeEntry(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return false, nil
	}
	delete(r.entries, id)
	return true, nil
}

// TradeEntryCount returns the number of stored entries.
func (r *InMemoryTradeRepository) TradeEntryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
