package order

import (
	"testing"

	"restaurant-manager-go/pkg/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.OrderStatusPlaced, model.OrderStatusPreparing, true},
		{model.OrderStatusPlaced, model.OrderStatusCancelled, true},
		{model.OrderStatusPreparing, model.OrderStatusReady, true},
		{model.OrderStatusPreparing, model.OrderStatusCancelled, true},
		{model.OrderStatusReady, model.OrderStatusServed, true},
		{model.OrderStatusServed, model.OrderStatusPaid, true},

		// No skipping ahead.
		{model.OrderStatusPlaced, model.OrderStatusReady, false},
		{model.OrderStatusPlaced, model.OrderStatusPaid, false},
		{model.OrderStatusPreparing, model.OrderStatusServed, false},

		// No moving backwards.
		{model.OrderStatusReady, model.OrderStatusPreparing, false},
		{model.OrderStatusServed, model.OrderStatusReady, false},

		// Cancellation window closes once the food is ready.
		{model.OrderStatusReady, model.OrderStatusCancelled, false},
		{model.OrderStatusServed, model.OrderStatusCancelled, false},

		// Terminal states.
		{model.OrderStatusPaid, model.OrderStatusPlaced, false},
		{model.OrderStatusCancelled, model.OrderStatusPlaced, false},

		// Unknown statuses.
		{"refunded", model.OrderStatusPaid, false},
		{model.OrderStatusPlaced, "refunded", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		model.OrderStatusPlaced, model.OrderStatusPreparing, model.OrderStatusReady,
		model.OrderStatusServed, model.OrderStatusPaid, model.OrderStatusCancelled,
	} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "refunded", "PLACED"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(model.OrderStatusPaid) || !IsTerminal(model.OrderStatusCancelled) {
		t.Error("paid and cancelled must be terminal")
	}
	for _, s := range []string{
		model.OrderStatusPlaced, model.OrderStatusPreparing,
		model.OrderStatusReady, model.OrderStatusServed, "refunded",
	} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = true, want false", s)
		}
	}
}
