package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"journal-backend/internal/domain"
)

const (
	demoUserID   = 1
	demoUsername = "demo"
	demoPassword = "password"
)

// SeedDemoUser creates the demo account unless user 1 already exists.
func SeedDemoUser(ctx context.Context, users domain.UserRepository, logger *slog.Logger) error {
	existing, err := users.GetUser(ctx, demoUserID)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	user, err := users.CreateUser(ctx, domain.NewUser{
		Username: demoUsername,
		Password: demoPassword,
	})
	if errors.Is(err, domain.ErrDuplicateUsername) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	logger.Info("created demo user", "user_id", user.ID)
	return nil
}
