package domain

import (
	"context"
	"errors"
)

var (
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrDuplicateFirebaseID = errors.New("firebase id already linked to another user")
	ErrProfileExists       = errors.New("trader profile already exists for user")
)

// Lookups return a nil record and a nil error when nothing matches. A non-nil
// error always means the store itself failed. Returned records are copies.

// UserRepository stores accounts
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByFirebaseID(ctx context.Context, firebaseID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error)
}

// TraderProfileRepository stores trader profiles
type TraderProfileRepository interface {
	GetTraderProfile(ctx context.Context, id int64) (*TraderProfile, error)
	GetTraderProfileByUserID(ctx context.Context, userID int64) (*TraderProfile, error)
	CreateTraderProfile(ctx context.Context, in NewTraderProfile) (*TraderProfile, error)
	UpdateTraderProfile(ctx context.Context, id int64, patch TraderProfilePatch) (*TraderProfile, error)
}

// TradeEntryRepository stores trade entries
type TradeEntryRepository interface {
	GetTradeEntry(ctx context.Context, id int64) (*TradeEntry, error)
	// GetTradeEntriesByProfileID returns entries newest date first; equal
	// dates keep insertion order.
	GetTradeEntriesByProfileID(ctx context.Context, profileID int64) ([]TradeEntry, error)
	CreateTradeEntry(ctx context.Context, in NewTradeEntry) (*TradeEntry, error)
	UpdateTradeEntry(ctx context.Context, id int64, patch TradeEntryPatch) (*TradeEntry, error)
	DeleteTradeEntry(ctx context.Context, id int64) (bool, error)
}

// Store is the full journal storage surface.
type Store interface {
	UserRepository
	TraderProfileRepository
	TradeEntryRepository
}
