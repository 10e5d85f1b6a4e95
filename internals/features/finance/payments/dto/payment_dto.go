package dto

import (
	"time"

	paymentModel "feeportal_backend/internals/features/finance/payments/model"
)

// CreateOrderResponse is handed back to the student's browser, which
// opens the Snap checkout with the token.
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
	GrossAmount int64  `json:"gross_amount"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

// MidtransNotification is the webhook payload. signature_key must be
// SHA512(order_id + status_code + gross_amount + server_key).
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
}

type PaymentResponse struct {
	OrderID     string     `json:"order_id"`
	AmountMinor int64      `json:"amount_minor"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Method      string     `json:"method"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToPaymentResponse(p *paymentModel.PaymentModel) PaymentResponse {
	return PaymentResponse{
		OrderID:     p.PaymentOrderID,
		AmountMinor: p.PaymentAmountMinor,
		Currency:    p.PaymentCurrency,
		Status:      p.PaymentStatus,
		Method:      p.PaymentMethod,
		PaidAt:      p.PaymentPaidAt,
		CreatedAt:   p.CreatedAt,
	}
}

func ToPaymentResponses(list []paymentModel.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToPaymentResponse(&list[i]))
	}
	return out
}
