package schema

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a simulated checkout.
type PaymentRequest struct {
	Amount      decimal.Decimal
	Description string
	FirebaseID  string
	Email       string
}

// ParsePaymentRequest requires a positive amount and a non-empty description.
func ParsePaymentRequest(raw map[string]any) (PaymentRequest, error) {
	r := newReader(raw)

	req := PaymentRequest{
		Description: strings.TrimSpace(r.requiredString("description")),
		FirebaseID:  r.optionalString("firebaseId", ""),
		Email:       r.optionalString("email", ""),
	}
	if amount := r.requiredDecimal("amount"); amount != "" {
		req.Amount = decimal.RequireFromString(amount)
		if !req.Amount.IsPositive() {
			r.add(Issue{
				Path:    []string{"amount"},
				Code:    CodeTooSmall,
				Message: "Amount must be greater than 0",
			})
		}
	}
	if _, present := raw["description"]; present && req.Description == "" {
		r.add(Issue{
			Path:    []string{"description"},
			Code:    CodeTooSmall,
			Message: "Description must not be empty",
		})
	}

	if err := r.err(); err != nil {
		return PaymentRequest{}, err
	}
	return req, nil
}
