package http

import (
	"errors"
	"log/slog"
	"net/http"

	"journal-backend/internal/schema"
	"journal-backend/internal/usecase"
)

// AuthHandler handles identity bootstrap endpoints
type AuthHandler struct {
	auth   *usecase.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *usecase.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Bootstrap handles POST /api/auth/firebase
func (h *AuthHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r)
	if err != nil {
		writeError(w, h.logger, err, "User not found")
		return
	}
	in, err := schema.ParseSignIn(raw)
	if err != nil {
		writeError(w, h.logger, err, "User not found")
		return
	}

	session, err := h.auth.Bootstrap(r.Context(), usecase.BootstrapRequest{
		IDToken:     in.IDToken,
		FirebaseID:  in.FirebaseID,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		PhotoURL:    in.PhotoURL,
	})
	switch {
	case errors.Is(err, usecase.ErrMissingIdentity):
		writeMessage(w, http.StatusBadRequest, "Firebase ID is required")
	case errors.Is(err, usecase.ErrInvalidIdentityToken):
		writeMessage(w, http.StatusUnauthorized, "Invalid ID token")
	case errors.Is(err, usecase.ErrIdentityConflict):
		writeMessage(w, http.StatusConflict, "Account is linked to another sign-in")
	case err != nil:
		h.logger.Error("firebase auth failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Authentication failed")
	default:
		writeJSON(w, http.StatusOK, session)
	}
}

// CurrentUser handles GET /api/auth/user?firebaseId=
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	session, err := h.auth.CurrentUser(r.Context(), r.URL.Query().Get("firebaseId"))
	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, usecase.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case err != nil:
		h.logger.Error("get current user failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusOK, session)
	}
}
