package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"journal-backend/internal/config"
)

// NewApp initializes the Firebase app from a credentials file or inline JSON.
// It returns nil, nil when no credentials are configured; callers then run
// with token verification and push notifications disabled.
func NewApp(ctx context.Context, cfg config.FirebaseConfig, logger *slog.Logger) (*firebase.App, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsPath != "":
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	case cfg.CredentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	default:
		logger.Warn("no Firebase credentials found, identity verification and FCM disabled")
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}
