package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"journal-backend/internal/domain"
	"journal-backend/internal/schema"
)

// PushNotifier delivers push notifications to device tokens.
type PushNotifier interface {
	IsEnabled() bool
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// DeviceTokens looks up the push tokens a user registered.
type DeviceTokens interface {
	TokensFor(firebaseID string) []string
}

// PaymentResult is the outcome of a simulated checkout.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

// BillingService reads and grants Pro status. Callers that cannot be
// identified act on the default user.
type BillingService struct {
	store         domain.Store
	notifier      PushNotifier
	tokens        DeviceTokens
	defaultUserID int64
	logger        *slog.Logger
	now           func() time.Time
}

// NewBillingService creates the service. notifier and tokens may be nil.
func NewBillingService(store domain.Store, notifier PushNotifier, tokens DeviceTokens, defaultUserID int64, logger *slog.Logger) *BillingService {
	return &BillingService{
		store:         store,
		notifier:      notifier,
		tokens:        tokens,
		defaultUserID: defaultUserID,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ProStatus reports the Pro flag of the user behind firebaseID, falling back
// to the default user when the id is empty or unknown.
func (s *BillingService) ProStatus(ctx context.Context, firebaseID string) (domain.ProStatus, error) {
	userID := s.defaultUserID
	if firebaseID != "" {
		user, err := s.store.GetUserByFirebaseID(ctx, firebaseID)
		if err != nil {
			return domain.ProStatus{}, fmt.Errorf("lookup user by firebase id: %w", err)
		}
		if user != nil {
			userID = user.ID
		}
	}

	profile, err := s.store.GetTraderProfileByUserID(ctx, userID)
	if err != nil {
		return domain.ProStatus{}, fmt.Errorf("get trader profile: %w", err)
	}
	if profile == nil {
		return domain.ProStatus{IsPro: false, ProSince: nil}, nil
	}
	return domain.ProStatus{IsPro: profile.IsPro, ProSince: profile.ProSince}, nil
}

// SimulatePayment upgrades the payer to Pro. No money moves; the payer's
// profile is created with defaults if it does not exist yet.
func (s *BillingService) SimulatePayment(ctx context.Context, req schema.PaymentRequest) (*PaymentResult, error) {
	s.logger.Info("processing payment",
		"amount", req.Amount.String(),
		"description", req.Description,
	)

	payer, err := s.resolvePayer(ctx, req)
	if err != nil {
		return nil, err
	}
	userID := s.defaultUserID
	if payer != nil {
		userID = payer.ID
	}

	profile, err := ensureProfile(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	profile, err = s.store.UpdateTraderProfile(ctx, profile.ID, domain.TraderProfilePatch{
		IsPro:    domain.Ptr(true),
		ProSince: domain.NullOf(s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("grant pro: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("grant pro: profile for user %d disappeared", userID)
	}

	txID := "TR-" + ulid.Make().String()
	s.logger.Info("pro status granted", "user_id", userID, "profile_id", profile.ID, "transaction_id", txID)

	s.notifyUpgrade(ctx, payer, txID)

	return &PaymentResult{
		Success:       true,
		TransactionID: txID,
		Message:       "Payment processed successfully",
	}, nil
}

// resolvePayer finds the paying user by firebase id, then by email. A nil
// user means the default user pays.
func (s *BillingService) resolvePayer(ctx context.Context, req schema.PaymentRequest) (*domain.User, error) {
	if req.FirebaseID != "" {
		user, err := s.store.GetUserByFirebaseID(ctx, req.FirebaseID)
		if err != nil {
			return nil, fmt.Errorf("lookup user by firebase id: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	if req.Email != "" {
		user, err := s.store.GetUserByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("lookup user by email: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	return s.store.GetUser(ctx, s.defaultUserID)
}

// notifyUpgrade pushes a confirmation to the payer's devices. Failures are
// logged and never fail the payment.
func (s *BillingService) notifyUpgrade(ctx context.Context, payer *domain.User, txID string) {
	if s.notifier == nil || !s.notifier.IsEnabled() || s.tokens == nil {
		return
	}
	if payer == nil || payer.FirebaseID == nil {
		return
	}

	tokens := s.tokens.TokensFor(*payer.FirebaseID)
	if len(tokens) == 0 {
		return
	}

	err := s.notifier.SendMulticast(ctx, tokens,
		"Pro activated",
		"Your trading journal now has Pro features.",
		map[string]string{
			"type":          "PRO_ACTIVATED",
			"transactionId": txID,
		},
	)
	if err != nil {
		s.logger.Error("pro upgrade notification failed", "user_id", payer.ID, "error", err)
	}
}
