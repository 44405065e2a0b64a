package repository

import (
	"sort"
	"sync"
	"time"
)

// DeviceToken represents a registered device token
type DeviceToken struct {
	Token      string
	Platform   string // "android", "ios" or "web"
	FirebaseID string // owner; empty for anonymous devices
	CreatedAt  time.Time
}

// TokenRepository manages device tokens for push notifications
type TokenRepository struct {
	tokens map[string]*DeviceToken // token -> DeviceToken
	mu     sync.RWMutex
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{
		tokens: make(map[string]*DeviceToken),
	}
}

// RegisterToken adds or updates a device token. Re-registering moves the
// token to its new owner.
func (r *TokenRepository) RegisterToken(token, platform, firebaseID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = &DeviceToken{
		Token:      token,
		Platform:   platform,
		FirebaseID: firebaseID,
		CreatedAt:  at,
	}
}

// UnregisterToken removes a device token and reports whether it was known.
func (r *TokenRepository) UnregisterToken(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false
	}
	delete(r.tokens, token)
	return true
}

// TokensFor returns the tokens registered by firebaseID, sorted.
func (r *TokenRepository) TokensFor(firebaseID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0)
	if firebaseID == "" {
		return tokens
	}
	for token, dt := range r.tokens {
		if dt.FirebaseID == firebaseID {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// GetTokenCount returns the number of registered tokens
func (r *TokenRepository) GetTokenCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tokens)
}
