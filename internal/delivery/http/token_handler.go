package http

import (
	"encoding/json"
	"net/http"
	"time"

	"journal-backend/internal/repository"
	"journal-backend/internal/usecase"
)

// TokenHandler manages device push tokens. When verifier is enabled a
// registration must carry an ID token, and the token is bound to the
// verified UID rather than the claimed firebaseId.
type TokenHandler struct {
	tokenRepo *repository.TokenRepository
	verifier  usecase.IdentityVerifier
}

func NewTokenHandler(tokenRepo *repository.TokenRepository, verifier usecase.IdentityVerifier) *TokenHandler {
	return &TokenHandler{
		tokenRepo: tokenRepo,
		verifier:  verifier,
	}
}

type RegisterTokenRequest struct {
	Token      string `json:"token"`
	Platform   string `json:"platform"`
	FirebaseID string `json:"firebaseId"`
	IDToken    string `json:"idToken"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// HandleRegisterToken handles POST /api/notifications/register
func (h *TokenHandler) HandleRegisterToken(w http.ResponseWriter, r *http.Request) {
	req, ok := readTokenRequest(w, r)
	if !ok {
		return
	}

	if h.verifier != nil && h.verifier.IsEnabled() {
		if req.IDToken == "" {
			writeMessage(w, http.StatusUnauthorized, "ID token is required")
			return
		}
		id, err := h.verifier.VerifyIDToken(r.Context(), req.IDToken)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid ID token")
			return
		}
		req.FirebaseID = id.UID
	}

	if req.Platform == "" {
		req.Platform = "android"
	}

	h.tokenRepo.RegisterToken(req.Token, req.Platform, req.FirebaseID, time.Now().UTC())

	writeJSON(w, http.StatusOK, TokenResponse{
		Success: true,
		Message: "Token registered successfully",
		Count:   h.tokenRepo.GetTokenCount(),
	})
}

// HandleUnregisterToken handles POST /api/notifications/unregister
func (h *TokenHandler) HandleUnregisterToken(w http.ResponseWriter, r *http.Request) {
	req, ok := readTokenRequest(w, r)
	if !ok {
		return
	}

	msg := "Token unregistered successfully"
	if !h.tokenRepo.UnregisterToken(req.Token) {
		msg = "Token was not registered"
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Success: true,
		Message: msg,
		Count:   h.tokenRepo.GetTokenCount(),
	})
}

// HandleGetTokenCount handles GET /api/notifications/count
func (h *TokenHandler) HandleGetTokenCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TokenResponse{
		Success: true,
		Message: "Token count retrieved",
		Count:   h.tokenRepo.GetTokenCount(),
	})
}

func readTokenRequest(w http.ResponseWriter, r *http.Request) (RegisterTokenRequest, bool) {
	var req RegisterTokenRequest
	limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return req, false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if req.Token == "" {
		writeMessage(w, http.StatusBadRequest, "Token is required")
		return req, false
	}
	return req, true
}
