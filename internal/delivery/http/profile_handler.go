package http

import (
	"log/slog"
	"net/http"

	"journal-backend/internal/schema"
	"journal-backend/internal/usecase"
)

const profileNotFound = "Trader profile not found"

// ProfileHandler handles trader profile endpoints
type ProfileHandler struct {
	journal *usecase.JournalService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(journal *usecase.JournalService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{journal: journal, logger: logger}
}

// Create handles POST /api/trader-profile
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}
	in, err := schema.ParseNewTraderProfile(raw)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}

	profile, err := h.journal.CreateProfile(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// GetByUser handles GET /api/trader-profile/{userId}
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.journal.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/trader-profile/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}
	patch, err := schema.ParseTraderProfilePatch(raw)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}

	profile, err := h.journal.UpdateProfile(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
