package model

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment records a charge attempt against the external gateway
type Payment struct {
	ID             int       `json:"id" db:"id"`
	OrderID        int       `json:"order_id" db:"order_id"`
	Provider       string    `json:"provider" db:"provider"`
	ProviderRef    string    `json:"provider_ref" db:"provider_ref"`
	AmountCents    int       `json:"amount_cents" db:"amount_cents"`
	Status         string    `json:"status" db:"status"`
	IdempotencyKey string    `json:"idempotency_key" db:"idempotency_key"`
	ReceiptEmail   string    `json:"receipt_email,omitempty" db:"receipt_email"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PaymentCreateRequest starts a charge for an order. ReceiptEmail is
// optional; when set, a receipt is mailed once the payment settles.
type PaymentCreateRequest struct {
	OrderID      int    `json:"order_id" binding:"required"`
	ReceiptEmail string `json:"receipt_email" binding:"omitempty,email"`
}

// PaymentCallbackPayload is the webhook body posted by the gateway
type PaymentCallbackPayload struct {
	ProviderRef string `json:"provider_ref" binding:"required"`
	Status      string `json:"status" binding:"required"`
}
