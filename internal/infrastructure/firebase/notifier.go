package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

const androidChannelID = "journal_account"

// Notifier sends push notifications through Firebase Cloud Messaging.
type Notifier struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewNotifier initializes the FCM client. A nil app yields a disabled notifier.
func NewNotifier(ctx context.Context, app *firebase.App, logger *slog.Logger) (*Notifier, error) {
	if app == nil {
		return &Notifier{logger: logger}, nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	logger.Info("Firebase Cloud Messaging initialized")
	return &Notifier{client: client, logger: logger}, nil
}

// SendMulticast sends one notification to every token.
func (n *Notifier) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if n.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	response, err := n.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast: %w", err)
	}

	n.logger.Info("push notification sent",
		"success", response.SuccessCount,
		"failure", response.FailureCount,
	)
	return nil
}

// IsEnabled returns true if FCM client is initialized
func (n *Notifier) IsEnabled() bool {
	return n.client != nil
}
