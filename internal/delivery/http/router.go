package http

import (
	"log/slog"
	"net/http"
)

// Handlers bundles everything the router mounts. Test and Feed may be nil.
type Handlers struct {
	Profile *ProfileHandler
	Trade   *TradeHandler
	Options *OptionHandler
	Auth    *AuthHandler
	Billing *BillingHandler
	Tokens  *TokenHandler
	Test    *TestHandler
	Feed    http.HandlerFunc
}

// NewRouter wires the API routes and wraps them in request logging.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/trader-profile", h.Profile.Create)
	mux.HandleFunc("GET /api/trader-profile/{userId}", h.Profile.GetByUser)
	mux.HandleFunc("PUT /api/trader-profile/{id}", h.Profile.Update)

	mux.HandleFunc("POST /api/trade-entries", h.Trade.CreateEntry)
	mux.HandleFunc("POST /api/trade-entries/validate", h.Trade.ValidateDraft)
	mux.HandleFunc("GET /api/trade-entries/profile/{profileId}", h.Trade.ListByProfile)
	mux.HandleFunc("GET /api/trade-entries/{id}", h.Trade.GetEntry)
	mux.HandleFunc("PUT /api/trade-entries/{id}", h.Trade.UpdateEntry)
	mux.HandleFunc("DELETE /api/trade-entries/{id}", h.Trade.DeleteEntry)

	mux.HandleFunc("GET /api/setup-quality-options", h.Options.SetupQualities)
	mux.HandleFunc("GET /api/trading-session-options", h.Options.TradingSessions)
	mux.HandleFunc("GET /api/trading-emotion-options", h.Options.TradingEmotions)
	mux.HandleFunc("GET /api/trade-status-options", h.Options.TradeStatuses)

	mux.HandleFunc("POST /api/auth/firebase", h.Auth.Bootstrap)
	mux.HandleFunc("GET /api/auth/user", h.Auth.CurrentUser)

	mux.HandleFunc("GET /api/user-pro-status", h.Billing.ProStatus)
	mux.HandleFunc("GET /api/user-pro-status/{firebaseId}", h.Billing.ProStatus)
	mux.HandleFunc("POST /api/simulate-payment", h.Billing.SimulatePayment)

	mux.HandleFunc("POST /api/notifications/register", h.Tokens.HandleRegisterToken)
	mux.HandleFunc("POST /api/notifications/unregister", h.Tokens.HandleUnregisterToken)
	mux.HandleFunc("GET /api/notifications/count", h.Tokens.HandleGetTokenCount)
	if h.Test != nil {
		mux.HandleFunc("POST /api/notifications/test", h.Test.SendTestNotification)
	}

	if h.Feed != nil {
		mux.HandleFunc("GET /ws/trade-entries/{profileId}", h.Feed)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return RequestLogger(logger, mux)
}
