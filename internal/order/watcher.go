package order

import (
	"log"
	"time"

	"restaurant-manager-go/pkg/model"
)

// Watcher periodically scans for orders stuck in the kitchen and
// notifies staff. It runs in a single background goroutine started
// from main.
type Watcher struct {
	orders         *OrderService
	notifier       Notifier
	checkInterval  time.Duration
	stuckThreshold time.Duration
}

// NewWatcher creates a watcher with sane defaults when zero values are
// passed.
func NewWatcher(orders *OrderService, notifier Notifier, checkInterval, stuckThreshold time.Duration) *Watcher {
	if checkInterval == 0 {
		checkInterval = time.Minute
	}
	if stuckThreshold == 0 {
		stuckThreshold = 20 * time.Minute
	}
	return &Watcher{
		orders:         orders,
		notifier:       notifier,
		checkInterval:  checkInterval,
		stuckThreshold: stuckThreshold,
	}
}

// RunScheduledChecks blocks, scanning on every tick. Call it in a
// goroutine.
func (w *Watcher) RunScheduledChecks() {
	log.Printf("[WATCHER] Starting stuck-order checks every %s (threshold %s)",
		w.checkInterval, w.stuckThreshold)

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for range ticker.C {
		w.checkStuckOrders()
	}
}

// checkStuckOrders flags kitchen orders whose last update is older
// than the threshold.
func (w *Watcher) checkStuckOrders() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WATCHER] Recovered from panic during stuck-order check: %v", r)
		}
	}()

	queue, err := w.orders.KitchenQueue()
	if err != nil {
		log.Printf("[WATCHER] Error fetching kitchen queue: %v", err)
		return
	}

	now := time.Now()
	for _, o := range queue {
		if o.Status != model.OrderStatusPreparing {
			continue
		}
		age := now.Sub(o.UpdatedAt)
		if age < w.stuckThreshold {
			continue
		}

		log.Printf("[WATCHER] Order %d (%s) stuck in preparing for %s", o.ID, o.OrderNumber, age.Round(time.Second))
		if w.notifier != nil {
			w.notifier.NotifyOrderStuck(o, age)
		}
	}
}
