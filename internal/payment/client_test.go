package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCreateChargeSuccess(t *testing.T) {
	var gotIdempotencyKey, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/charges" {
			t.Errorf("path = %s, want /v1/charges", r.URL.Path)
		}
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")

		var req ChargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding charge request: %v", err)
		}
		if req.AmountCents != 4250 || req.Reference != "order-123" {
			t.Errorf("charge request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChargeResponse{ProviderRef: "ch_abc", Status: "succeeded"})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{BaseURL: server.URL, APIKey: "sk_test"})
	resp, err := client.CreateCharge(4250, "order-123", "idem-1")
	if err != nil {
		t.Fatalf("CreateCharge: %v", err)
	}
	if resp.ProviderRef != "ch_abc" || resp.Status != "succeeded" {
		t.Errorf("response = %+v", resp)
	}
	if gotIdempotencyKey != "idem-1" {
		t.Errorf("Idempotency-Key = %q, want idem-1", gotIdempotencyKey)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("Authorization = %q, want Bearer sk_test", gotAuth)
	}
}

func TestCreateChargeRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "gateway overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(ChargeResponse{ProviderRef: "ch_retry", Status: "pending"})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	resp, err := client.CreateCharge(100, "order-9", "idem-2")
	if err != nil {
		t.Fatalf("CreateCharge: %v", err)
	}
	if resp.ProviderRef != "ch_retry" {
		t.Errorf("response = %+v", resp)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("gateway called %d times, want 3", got)
	}
}

func TestCreateChargeGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	_, err := client.CreateCharge(100, "order-9", "idem-3")
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	// Initial attempt plus two retries.
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("gateway called %d times, want 3", got)
	}
}

func TestCreateChargeClientErrorIsFinal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "card declined", http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	_, err := client.CreateCharge(100, "order-9", "idem-4")
	if err == nil {
		t.Fatal("expected error for declined charge")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("client error retried: %d calls, want 1", got)
	}
}
