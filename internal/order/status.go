package order

import "restaurant-manager-go/pkg/model"

// transitions is the order lifecycle: placed orders move through the
// kitchen to served and paid, and can only be cancelled before they
// are ready. paid and cancelled are terminal.
var transitions = map[string][]string{
	model.OrderStatusPlaced:    {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusServed},
	model.OrderStatusServed:    {model.OrderStatusPaid},
	model.OrderStatusPaid:      {},
	model.OrderStatusCancelled: {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s string) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}
