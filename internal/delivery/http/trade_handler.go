package http

import (
	"log/slog"
	"net/http"

	"journal-backend/internal/schema"
	"journal-backend/internal/usecase"
)

const entryNotFound = "Trade entry not found"

// TradeHandler handles trade entry endpoints
type TradeHandler struct {
	journal *usecase.JournalService
	logger  *slog.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(journal *usecase.JournalService, logger *slog.Logger) *TradeHandler {
	return &TradeHandler{journal: journal, logger: logger}
}

// CreateEntry handles POST /api/trade-entries
func (h *TradeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	in, err := schema.ParseNewTradeEntry(raw)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}

	entry, err := h.journal.CreateTradeEntry(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ValidateDraft handles POST /api/trade-entries/validate. It checks a draft
// against the form rules and echoes the defaulted entry without storing it.
func (h *TradeHandler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	draft, err := schema.ParseTradeEntryForm(raw)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"entry": map[string]any{
			"traderProfileId": draft.TraderProfileID,
			"date":            draft.Date,
			"tradingDay":      draft.TradingDay,
			"tradingSession":  draft.TradingSession,
			"assetTraded":     draft.AssetTraded,
			"setupQuality":    draft.SetupQuality,
			"riskPercentage":  draft.RiskPercentage,
			"riskRewardRatio": draft.RiskRewardRatio,
			"pnlAmount":       draft.PnlAmount,
			"tradeStatus":     draft.TradeStatus,
			"strategyUsed":    draft.StrategyUsed,
			"tradingEmotion":  draft.TradingEmotion,
			"chartImage":      draft.ChartImage,
			"comments":        draft.Comments,
		},
	})
}

// ListByProfile handles GET /api/trade-entries/profile/{profileId}
func (h *TradeHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathID(r, "profileId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	entries, err := h.journal.ListTradeEntries(r.Context(), profileID)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetEntry handles GET /api/trade-entries/{id}
func (h *TradeHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, err := h.journal.GetTradeEntry(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// UpdateEntry handles PUT /api/trade-entries/{id}
func (h *TradeHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	patch, err := schema.ParseTradeEntryPatch(raw)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}

	entry, err := h.journal.UpdateTradeEntry(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/trade-entries/{id}
func (h *TradeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.journal.DeleteTradeEntry(r.Context(), id); err != nil {
		writeError(w, h.logger, err, entryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
