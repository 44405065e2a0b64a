package http

import (
	"errors"
	"log/slog"
	"net/http"

	"journal-backend/internal/schema"
	"journal-backend/internal/usecase"
)

// BillingHandler handles Pro status and payment endpoints
type BillingHandler struct {
	billing *usecase.BillingService
	logger  *slog.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billing *usecase.BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{billing: billing, logger: logger}
}

type paymentFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProStatus handles GET /api/user-pro-status[/{firebaseId}]. The id may also
// come from the firebaseId query parameter.
func (h *BillingHandler) ProStatus(w http.ResponseWriter, r *http.Request) {
	firebaseID := r.PathValue("firebaseId")
	if firebaseID == "" {
		firebaseID = r.URL.Query().Get("firebaseId")
	}

	status, err := h.billing.ProStatus(r.Context(), firebaseID)
	if err != nil {
		h.logger.Error("fetch pro status failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch PRO status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// SimulatePayment handles POST /api/simulate-payment
func (h *BillingHandler) SimulatePayment(w http.ResponseWriter, r *http.Request) {
	req, err := readPayment(w, r)
	if err != nil {
		if isBodyTooLarge(err) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		var verr *schema.ValidationError
		if errors.As(err, &verr) || errors.Is(err, schema.ErrMalformedJSON) {
			writeJSON(w, http.StatusBadRequest, paymentFailure{
				Success: false,
				Message: "Amount and description are required",
			})
			return
		}
		h.logger.Error("read payment request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, paymentFailure{Message: "Failed to process payment"})
		return
	}

	result, err := h.billing.SimulatePayment(r.Context(), req)
	if err != nil {
		h.logger.Error("payment failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, paymentFailure{Message: "Failed to process payment"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func readPayment(w http.ResponseWriter, r *http.Request) (schema.PaymentRequest, error) {
	raw, err := decodeBody(w, r)
	if err != nil {
		return schema.PaymentRequest{}, err
	}
	return schema.ParsePaymentRequest(raw)
}
