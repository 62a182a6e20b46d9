package handler

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"restaurant-manager-go/internal/order"
	"restaurant-manager-go/internal/payment"
	"restaurant-manager-go/pkg/model"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment HTTP requests, including the gateway
// webhook
type PaymentHandler struct {
	paymentService *payment.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req model.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.paymentService.CreatePayment(req)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, payment.ErrOrderNotPayable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not payable"})
			return
		}
		log.Printf("Error creating payment: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPayments handles GET /api/orders/:id/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	payments, err := h.paymentService.ListPayments(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// HandleCallback handles POST /api/payments/callback from the gateway.
// The shared secret header authenticates the gateway.
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	secretHeader := c.GetHeader("X-Callback-Secret")
	expectedSecret := os.Getenv("PAYMENT_CALLBACK_SECRET")

	// If no secret is configured, skip authentication
	if expectedSecret == "" {
		log.Printf("[CALLBACK] WARNING: No PAYMENT_CALLBACK_SECRET configured, skipping authentication")
	} else if secretHeader != expectedSecret {
		log.Printf("[CALLBACK] UNAUTHORIZED: Invalid or missing secret header from IP: %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload model.PaymentCallbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[CALLBACK] Payment callback: provider_ref=%s status=%s from IP %s",
		payload.ProviderRef, payload.Status, c.ClientIP())

	if err := h.paymentService.HandleCallback(payload); err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown provider reference"})
			return
		}
		log.Printf("[CALLBACK] Error handling callback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process callback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
