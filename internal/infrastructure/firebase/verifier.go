package firebase

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"journal-backend/internal/domain"
)

// ErrVerifierDisabled is returned when no Firebase app is configured.
var ErrVerifierDisabled = errors.New("firebase token verification disabled")

// Verifier checks Firebase ID tokens.
type Verifier struct {
	client *auth.Client
}

// NewVerifier builds a verifier. A nil app yields a disabled verifier.
func NewVerifier(ctx context.Context, app *firebase.App) (*Verifier, error) {
	if app == nil {
		return &Verifier{}, nil
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}
	return &Verifier{client: client}, nil
}

// VerifyIDToken validates idToken and returns the identity it carries.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (domain.Identity, error) {
	if v.client == nil {
		return domain.Identity{}, ErrVerifierDisabled
	}
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("verify id token: %w", err)
	}
	return domain.Identity{
		UID:           tok.UID,
		Email:         claim(tok.Claims, "email"),
		EmailVerified: boolClaim(tok.Claims, "email_verified"),
		Name:          claim(tok.Claims, "name"),
		Picture:       claim(tok.Claims, "picture"),
	}, nil
}

// IsEnabled returns true if a Firebase app backs the verifier
func (v *Verifier) IsEnabled() bool {
	return v.client != nil
}

func claim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

func boolClaim(claims map[string]interface{}, key string) bool {
	b, _ := claims[key].(bool)
	return b
}
