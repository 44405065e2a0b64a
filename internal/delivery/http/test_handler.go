package http

import (
	"net/http"
	"time"

	"journal-backend/internal/repository"
	"journal-backend/internal/usecase"
)

type TestHandler struct {
	notifier  usecase.PushNotifier
	tokenRepo *repository.TokenRepository
}

func NewTestHandler(notifier usecase.PushNotifier, tokenRepo *repository.TokenRepository) *TestHandler {
	return &TestHandler{
		notifier:  notifier,
		tokenRepo: tokenRepo,
	}
}

type testNotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SendTestNotification handles POST /api/notifications/test?firebaseId=
// by pushing a test message to every device the user registered.
func (h *TestHandler) SendTestNotification(w http.ResponseWriter, r *http.Request) {
	firebaseID := r.URL.Query().Get("firebaseId")
	if firebaseID == "" {
		writeMessage(w, http.StatusBadRequest, "Firebase ID is required")
		return
	}

	if h.notifier == nil || !h.notifier.IsEnabled() {
		writeJSON(w, http.StatusOK, testNotificationResponse{Message: "FCM not configured"})
		return
	}

	tokens := h.tokenRepo.TokensFor(firebaseID)
	if len(tokens) == 0 {
		writeJSON(w, http.StatusOK, testNotificationResponse{Message: "No registered devices"})
		return
	}

	data := map[string]string{
		"type":      "test",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	err := h.notifier.SendMulticast(r.Context(), tokens,
		"Test notification",
		"Notifications from your trading journal are working.",
		data,
	)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, testNotificationResponse{
			Message: "Failed to send notification: " + err.Error(),
			Count:   len(tokens),
		})
		return
	}

	writeJSON(w, http.StatusOK, testNotificationResponse{
		Success: true,
		Message: "Test notification sent successfully",
		Count:   len(tokens),
	})
}
