package http

import (
	"net/http"

	"journal-backend/internal/domain"
)

// OptionHandler serves the closed value lists the client renders as pickers.
type OptionHandler struct{}

func NewOptionHandler() *OptionHandler {
	return &OptionHandler{}
}

func (h *OptionHandler) SetupQualities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Strings(domain.SetupQualities))
}

func (h *OptionHandler) TradingSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Strings(domain.TradingSessions))
}

func (h *OptionHandler) TradingEmotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Strings(domain.TradingEmotions))
}

func (h *OptionHandler) TradeStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Strings(domain.TradeStatuses))
}
