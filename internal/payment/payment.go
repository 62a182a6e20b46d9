package payment

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"restaurant-manager-go/internal/order"
	"restaurant-manager-go/pkg/model"
)

// Sentinel errors matched by the HTTP layer.
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrOrderNotPayable = errors.New("order is not payable")
)

// Gateway abstracts the external payment provider so the service can
// be exercised without the real API.
type Gateway interface {
	CreateCharge(amountCents int, reference, idempotencyKey string) (*ChargeResponse, error)
}

// ReceiptMailer sends a receipt for a settled order. The notification
// package provides the SMTP implementation; nil disables receipts.
type ReceiptMailer interface {
	SendReceipt(to string, order *model.OrderResponse) error
}

// PaymentService records charges and settles orders
type PaymentService struct {
	db       *sqlx.DB
	gateway  Gateway
	orders   *order.OrderService
	mailer   ReceiptMailer
	provider string
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *sqlx.DB, gateway Gateway, orders *order.OrderService, mailer ReceiptMailer, provider string) *PaymentService {
	if provider == "" {
		provider = "gateway"
	}
	return &PaymentService{db: db, gateway: gateway, orders: orders, mailer: mailer, provider: provider}
}

// CreatePayment charges the full open amount of an order. Each call
// creates its own payment row with a fresh idempotency key; the
// gateway deduplicates retries of the same row.
func (s *PaymentService) CreatePayment(req model.PaymentCreateRequest) (*model.Payment, error) {
	ord, err := s.orders.GetOrder(req.OrderID)
	if err != nil {
		return nil, err
	}
	if ord.Status == model.OrderStatusPaid || ord.Status == model.OrderStatusCancelled {
		return nil, ErrOrderNotPayable
	}

	idempotencyKey := uuid.NewString()

	var payment model.Payment
	err = s.db.Get(&payment,
		`INSERT INTO payments (order_id, provider, provider_ref, amount_cents, status, idempotency_key, receipt_email, created_at, updated_at)
         VALUES ($1, $2, '', $3, $4, $5, $6, $7, $7)
         RETURNING *`,
		ord.ID, s.provider, ord.TotalCents, model.PaymentStatusPending, idempotencyKey, req.ReceiptEmail, time.Now())
	if err != nil {
		return nil, err
	}

	charge, err := s.gateway.CreateCharge(ord.TotalCents, ord.OrderNumber, idempotencyKey)
	if err != nil {
		log.Printf("[PAYMENT] Charge for order %d failed: %v", ord.ID, err)
		s.markPayment(payment.ID, "", model.PaymentStatusFailed)
		return nil, fmt.Errorf("gateway charge failed: %w", err)
	}

	status := model.PaymentStatusPending
	if charge.Status == "succeeded" {
		status = model.PaymentStatusSucceeded
	}
	updated, err := s.markPayment(payment.ID, charge.ProviderRef, status)
	if err != nil {
		return nil, err
	}

	// Synchronous success settles the order immediately; otherwise the
	// webhook callback finishes the job.
	if status == model.PaymentStatusSucceeded {
		s.settleOrder(updated)
	}
	return updated, nil
}

// settleOrder marks the order paid and mails the receipt when one was
// requested. Failures are logged, not returned: the charge already
// succeeded.
func (s *PaymentService) settleOrder(payment *model.Payment) {
	if _, err := s.orders.MarkPaid(payment.OrderID); err != nil {
		log.Printf("[PAYMENT] Error marking order %d paid: %v", payment.OrderID, err)
		return
	}

	if s.mailer == nil || payment.ReceiptEmail == "" {
		return
	}
	ord, err := s.orders.GetOrder(payment.OrderID)
	if err != nil {
		log.Printf("[PAYMENT] Error fetching order %d for receipt: %v", payment.OrderID, err)
		return
	}
	if err := s.mailer.SendReceipt(payment.ReceiptEmail, ord); err != nil {
		log.Printf("[PAYMENT] Error sending receipt for order %d: %v", payment.OrderID, err)
	}
}

// HandleCallback settles a payment from the gateway's webhook
func (s *PaymentService) HandleCallback(payload model.PaymentCallbackPayload) error {
	var payment model.Payment
	err := s.db.Get(&payment, "SELECT * FROM payments WHERE provider_ref = $1", payload.ProviderRef)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrPaymentNotFound
		}
		return err
	}

	var status string
	switch payload.Status {
	case "succeeded":
		status = model.PaymentStatusSucceeded
	case "failed":
		status = model.PaymentStatusFailed
	default:
		return fmt.Errorf("unknown callback status %q", payload.Status)
	}

	updated, err := s.markPayment(payment.ID, payment.ProviderRef, status)
	if err != nil {
		return err
	}

	if status == model.PaymentStatusSucceeded {
		s.settleOrder(updated)
	}
	return nil
}

// ListPayments returns the payment history of an order
func (s *PaymentService) ListPayments(orderID int) ([]model.Payment, error) {
	payments := []model.Payment{}
	err := s.db.Select(&payments, "SELECT * FROM payments WHERE order_id = $1 ORDER BY created_at", orderID)
	return payments, err
}

func (s *PaymentService) markPayment(paymentID int, providerRef, status string) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.Get(&payment,
		`UPDATE payments SET provider_ref = $1, status = $2, updated_at = $3
         WHERE id = $4
         RETURNING *`,
		providerRef, status, time.Now(), paymentID)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
