package usecase

import (
	"context"
	"fmt"

	"journal-backend/internal/domain"
)

// JournalService runs profile and trade entry operations against a store.
// Absent records surface as ErrNotFound.
type JournalService struct {
	store domain.Store
}

func NewJournalService(store domain.Store) *JournalService {
	return &JournalService{store: store}
}

func (s *JournalService) CreateProfile(ctx context.Context, in domain.NewTraderProfile) (*domain.TraderProfile, error) {
	p, err := s.store.CreateTraderProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create trader profile: %w", err)
	}
	return p, nil
}

func (s *JournalService) GetProfileByUserID(ctx context.Context, userID int64) (*domain.TraderProfile, error) {
	p, err := s.store.GetTraderProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get trader profile: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *JournalService) UpdateProfile(ctx context.Context, id int64, patch domain.TraderProfilePatch) (*domain.TraderProfile, error) {
	p, err := s.store.UpdateTraderProfile(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update trader profile: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *JournalService) CreateTradeEntry(ctx context.Context, in domain.NewTradeEntry) (*domain.TradeEntry, error) {
	e, err := s.store.CreateTradeEntry(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create trade entry: %w", err)
	}
	return e, nil
}

// ListTradeEntries returns a profile's entries, newest first. An unknown
// profile has no entries.
func (s *JournalService) ListTradeEntries(ctx context.Context, profileID int64) ([]domain.TradeEntry, error) {
	entries, err := s.store.GetTradeEntriesByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list trade entries: %w", err)
	}
	if entries == nil {
		entries = make([]domain.TradeEntry, 0)
	}
	return entries, nil
}

func (s *JournalService) GetTradeEntry(ctx context.Context, id int64) (*domain.TradeEntry, error) {
	e, err := s.store.GetTradeEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trade entry: %w", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *JournalService) UpdateTradeEntry(ctx context.Context, id int64, patch domain.TradeEntryPatch) (*domain.TradeEntry, error) {
	e, err := s.store.UpdateTradeEntry(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update trade entry: %w", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *JournalService) DeleteTradeEntry(ctx context.Context, id int64) error {
	removed, err := s.store.DeleteTradeEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("delete trade entry: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
