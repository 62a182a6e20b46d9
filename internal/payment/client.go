// Package payment integrates the external payment gateway and records
// charge attempts. The gateway is a collaborator, not part of this
// system: the client here is a thin REST wrapper.
package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// GatewayConfig holds configuration for the payment gateway API
type GatewayConfig struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// GatewayClient is a client for the payment gateway REST API
type GatewayClient struct {
	config     GatewayConfig
	httpClient *http.Client
}

// NewGatewayClient creates a new client for the payment gateway
func NewGatewayClient(config GatewayConfig) *GatewayClient {
	// Set default values if not provided
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 2 * time.Second
	}

	return &GatewayClient{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ChargeRequest is the payload sent to the gateway
type ChargeRequest struct {
	AmountCents int    `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// ChargeResponse is the gateway's answer to a charge request
type ChargeResponse struct {
	ProviderRef string `json:"provider_ref"`
	Status      string `json:"status"`
}

// CreateCharge starts a charge at the gateway. The idempotency key
// makes retries safe: the gateway deduplicates on it, so a retried
// request can never double-charge.
func (c *GatewayClient) CreateCharge(amountCents int, reference, idempotencyKey string) (*ChargeResponse, error) {
	payload := ChargeRequest{
		AmountCents: amountCents,
		Currency:    "EUR",
		Reference:   reference,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1/charges", c.config.BaseURL)

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[PAYMENT] Retrying charge %s (attempt %d/%d)", reference, attempt, c.config.MaxRetries)
			time.Sleep(c.config.RetryDelay)
		}

		req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		req.Header.Set("Idempotency-Key", idempotencyKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to send charge request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		// Retry only server-side failures; client errors are final.
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
			continue
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
		}

		var chargeResp ChargeResponse
		if err := json.Unmarshal(body, &chargeResp); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}

		log.Printf("[PAYMENT] Charge created - ref: %s, provider_ref: %s, status: %s",
			reference, chargeResp.ProviderRef, chargeResp.Status)
		return &chargeResp, nil
	}

	return nil, fmt.Errorf("charge failed after %d retries: %w", c.config.MaxRetries, lastErr)
}
