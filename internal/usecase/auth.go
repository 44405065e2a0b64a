package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"journal-backend/internal/domain"
)

const maxUsernameAttempts = 1000

// IdentityVerifier turns an ID token into a verified identity.
type IdentityVerifier interface {
	IsEnabled() bool
	VerifyIDToken(ctx context.Context, idToken string) (domain.Identity, error)
}

// BootstrapRequest is a sign-in from the client. When a verifier is enabled
// IDToken is required, and the UID and email come from the verified token
// only; otherwise FirebaseID and Email are trusted as given.
type BootstrapRequest struct {
	IDToken     string
	FirebaseID  string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserView is the public projection of a user.
type UserView struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

func viewOf(u *domain.User) UserView {
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// Session pairs a user with their trader profile.
type Session struct {
	User    UserView              `json:"user"`
	Profile *domain.TraderProfile `json:"profile"`
}

// AuthService finds or creates users for external identities.
type AuthService struct {
	store    domain.Store
	verifier IdentityVerifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates the service. verifier may be nil.
func NewAuthService(store domain.Store, verifier IdentityVerifier, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:    store,
		verifier: verifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Bootstrap resolves the caller's identity and returns their user and
// profile, creating or linking records as needed. The profile always exists
// afterwards.
func (s *AuthService) Bootstrap(ctx context.Context, req BootstrapRequest) (*Session, error) {
	req, linkable, err := s.resolveIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByFirebaseID(ctx, req.FirebaseID)
	if err != nil {
		return nil, fmt.Errorf("lookup user by firebase id: %w", err)
	}
	if user == nil && linkable && req.Email != "" {
		user, err = s.linkByEmail(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		user, err = s.createUser(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	profile, err := ensureProfile(ctx, s.store, user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: viewOf(user), Profile: profile}, nil
}

// CurrentUser returns the session for a firebase id without creating anything.
func (s *AuthService) CurrentUser(ctx context.Context, firebaseID string) (*Session, error) {
	if firebaseID == "" {
		return nil, ErrNotAuthenticated
	}
	user, err := s.store.GetUserByFirebaseID(ctx, firebaseID)
	if err != nil {
		return nil, fmt.Errorf("lookup user by firebase id: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	profile, err := s.store.GetTraderProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get trader profile: %w", err)
	}
	return &Session{User: viewOf(user), Profile: profile}, nil
}

// resolveIdentity fills in the caller's identity. linkable reports whether
// the email is trustworthy enough to attach the identity to an existing
// account with that email.
func (s *AuthService) resolveIdentity(ctx context.Context, req BootstrapRequest) (BootstrapRequest, bool, error) {
	if s.verifier == nil || !s.verifier.IsEnabled() {
		if req.FirebaseID == "" {
			return req, false, ErrMissingIdentity
		}
		return req, true, nil
	}

	if req.IDToken == "" {
		return req, false, ErrMissingIdentity
	}
	id, err := s.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		s.logger.Warn("identity token rejected", "error", err)
		return req, false, ErrInvalidIdentityToken
	}

	req.FirebaseID = id.UID
	req.Email = id.Email
	if req.DisplayName == "" {
		req.DisplayName = id.Name
	}
	if req.PhotoURL == "" {
		req.PhotoURL = id.Picture
	}
	return req, id.EmailVerified, nil
}

// linkByEmail attaches the identity to an existing account with the same
// email, keeping its display name and photo unless new ones are supplied.
func (s *AuthService) linkByEmail(ctx context.Context, req BootstrapRequest) (*domain.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.FirebaseID != nil && *existing.FirebaseID != req.FirebaseID {
		s.logger.Warn("refused to relink user to a new firebase identity", "user_id", existing.ID)
		return nil, ErrIdentityConflict
	}

	patch := domain.UserPatch{
		FirebaseID:     domain.NullOf(req.FirebaseID),
		IsFirebaseUser: domain.Ptr(true),
	}
	if req.DisplayName != "" {
		patch.DisplayName = domain.NullOf(req.DisplayName)
	}
	if req.PhotoURL != "" {
		patch.PhotoURL = domain.NullOf(req.PhotoURL)
	}

	user, err := s.store.UpdateUser(ctx, existing.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("link user %d: %w", existing.ID, err)
	}
	s.logger.Info("linked firebase identity to existing user", "user_id", existing.ID)
	return user, nil
}

// createUser picks the first free username of base, base_2, base_3 and so on.
func (s *AuthService) createUser(ctx context.Context, req BootstrapRequest) (*domain.User, error) {
	base := usernameBase(req.Email, s.now())

	for attempt := 1; attempt <= maxUsernameAttempts; attempt++ {
		username := base
		if attempt > 1 {
			username = fmt.Sprintf("%s_%d", base, attempt)
		}

		user, err := s.store.CreateUser(ctx, domain.NewUser{
			Username:       username,
			Email:          optional(req.Email),
			FirebaseID:     optional(req.FirebaseID),
			DisplayName:    optional(req.DisplayName),
			PhotoURL:       optional(req.PhotoURL),
			IsFirebaseUser: true,
		})
		if errors.Is(err, domain.ErrDuplicateUsername) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.logger.Info("created user for firebase identity", "user_id", user.ID, "username", username)
		return user, nil
	}
	return nil, fmt.Errorf("create user: no free username for %q", base)
}

// ensureProfile returns the user's profile, creating a default one if needed.
func ensureProfile(ctx context.Context, store domain.TraderProfileRepository, userID int64) (*domain.TraderProfile, error) {
	profile, err := store.GetTraderProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get trader profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile, err = store.CreateTraderProfile(ctx, domain.DefaultTraderProfile(userID))
	if errors.Is(err, domain.ErrProfileExists) {
		// Created concurrently.
		profile, err = store.GetTraderProfileByUserID(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("create trader profile: %w", err)
	}
	return profile, nil
}

func usernameBase(email string, now time.Time) string {
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return fmt.Sprintf("user_%d", now.UnixMilli())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
