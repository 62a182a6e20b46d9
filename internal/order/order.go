// Package order owns the order lifecycle: creation, amendment, the
// kitchen queue and the status machine, plus the background watcher
// that flags stuck orders.
package order

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"restaurant-manager-go/pkg/model"
)

// Sentinel errors matched by the HTTP layer.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderNotOpen      = errors.New("order is not open")
)

// Notifier delivers staff notifications about orders. Implementations
// live in the notification package; a nil Notifier is allowed.
type Notifier interface {
	NotifyOrderPlaced(order *model.OrderResponse)
	NotifyOrderStuck(order model.Order, since time.Duration)
}

// OrderService handles order operations
type OrderService struct {
	db       *sqlx.DB
	notifier Notifier
}

// NewOrderService creates a new order service
func NewOrderService(db *sqlx.DB, notifier Notifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// CreateOrder places a new order for a table. Prices are resolved
// server-side from the current menu and captured on the order lines so
// later menu edits do not rewrite history.
func (s *OrderService) CreateOrder(waiterID int, req model.OrderCreateRequest) (*model.OrderResponse, error) {
	var tableExists bool
	err := s.db.Get(&tableExists, "SELECT EXISTS(SELECT 1 FROM tables WHERE id = $1)", req.TableID)
	if err != nil {
		return nil, err
	}
	if !tableExists {
		return nil, ErrTableNotFound
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	var order model.Order
	err = tx.Get(&order,
		`INSERT INTO orders (order_number, table_id, waiter_id, status, total_cents, note, created_at, updated_at)
         VALUES ($1, $2, $3, $4, 0, $5, $6, $6)
         RETURNING *`,
		uuid.NewString(), req.TableID, waiterID, model.OrderStatusPlaced, req.Note, now)
	if err != nil {
		return nil, err
	}

	total := 0
	items := []model.OrderItemWithOptions{}
	for _, line := range req.Lines {
		item, err := s.insertLine(tx, order.ID, line)
		if err != nil {
			return nil, err
		}
		lineTotal := item.UnitPriceCents * item.Quantity
		total += lineTotal
		items = append(items, *item)
	}

	err = tx.Get(&order,
		"UPDATE orders SET total_cents = $1 WHERE id = $2 RETURNING *", total, order.ID)
	if err != nil {
		return nil, err
	}

	// A fresh order marks its table occupied on the floor map.
	_, err = tx.Exec("UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3",
		model.TableStatusOccupied, now, req.TableID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	resp := &model.OrderResponse{Order: order, Items: items}
	if s.notifier != nil {
		s.notifier.NotifyOrderPlaced(resp)
	}
	return resp, nil
}

// insertLine resolves one requested line against the menu and writes
// the order_items / order_item_options rows.
func (s *OrderService) insertLine(tx *sqlx.Tx, orderID int, line model.OrderLineRequest) (*model.OrderItemWithOptions, error) {
	var menuItem model.MenuItem
	err := tx.Get(&menuItem, "SELECT * FROM menu_items WHERE id = $1", line.MenuItemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("menu item %d not found", line.MenuItemID)
		}
		return nil, err
	}
	if !menuItem.Available {
		return nil, fmt.Errorf("menu item %q is unavailable", menuItem.Name)
	}

	unitPrice := menuItem.PriceCents
	options := []model.OrderItemOption{}
	for _, optionID := range line.OptionIDs {
		var opt model.MenuOption
		err := tx.Get(&opt,
			"SELECT * FROM menu_options WHERE id = $1 AND menu_item_id = $2", optionID, menuItem.ID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("option %d not valid for item %q", optionID, menuItem.Name)
			}
			return nil, err
		}
		unitPrice += opt.PriceDeltaCents
		options = append(options, model.OrderItemOption{Name: opt.Name, PriceDeltaCents: opt.PriceDeltaCents})
	}

	var orderItem model.OrderItem
	err = tx.Get(&orderItem,
		`INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price_cents, note)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING *`,
		orderID, menuItem.ID, menuItem.Name, line.Quantity, unitPrice, line.Note)
	if err != nil {
		return nil, err
	}

	for i := range options {
		err = tx.Get(&options[i],
			`INSERT INTO order_item_options (order_item_id, name, price_delta_cents)
             VALUES ($1, $2, $3)
             RETURNING *`,
			orderItem.ID, options[i].Name, options[i].PriceDeltaCents)
		if err != nil {
			return nil, err
		}
	}

	return &model.OrderItemWithOptions{OrderItem: orderItem, Options: options}, nil
}

// AddItems appends lines to an order that is still open (placed or
// preparing) and recomputes the total.
func (s *OrderService) AddItems(orderID int, lines []model.OrderLineRequest) (*model.OrderResponse, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPlaced && order.Status != model.OrderStatusPreparing {
		return nil, ErrOrderNotOpen
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	added := 0
	for _, line := range lines {
		item, err := s.insertLine(tx, orderID, line)
		if err != nil {
			return nil, err
		}
		added += item.UnitPriceCents * item.Quantity
	}

	_, err = tx.Exec("UPDATE orders SET total_cents = total_cents + $1, updated_at = $2 WHERE id = $3",
		added, time.Now(), orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// UpdateStatus moves an order along the lifecycle, enforcing the
// transition table. Paying or cancelling frees the table.
func (s *OrderService) UpdateStatus(orderID int, newStatus string) (*model.Order, error) {
	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var updated model.Order
	err = tx.Get(&updated,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 RETURNING *",
		newStatus, time.Now(), orderID)
	if err != nil {
		return nil, err
	}

	if IsTerminal(newStatus) {
		_, err = tx.Exec("UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3",
			model.TableStatusFree, time.Now(), updated.TableID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetOrder fetches an order with its lines and options
func (s *OrderService) GetOrder(orderID int) (*model.OrderResponse, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	items := []model.OrderItem{}
	err = s.db.Select(&items, "SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}

	resp := &model.OrderResponse{Order: *order, Items: []model.OrderItemWithOptions{}}
	for _, item := range items {
		options := []model.OrderItemOption{}
		err = s.db.Select(&options, "SELECT * FROM order_item_options WHERE order_item_id = $1 ORDER BY id", item.ID)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, model.OrderItemWithOptions{OrderItem: item, Options: options})
	}
	return resp, nil
}

func (s *OrderService) getOrder(orderID int) (*model.Order, error) {
	var order model.Order
	err := s.db.Get(&order, "SELECT * FROM orders WHERE id = $1", orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders, optionally filtered by status
func (s *OrderService) ListOrders(status string) (*model.OrderListResponse, error) {
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	orders := []model.Order{}
	var err error
	if status != "" {
		err = s.db.Select(&orders, "SELECT * FROM orders WHERE status = $1 ORDER BY created_at DESC", status)
	} else {
		err = s.db.Select(&orders, "SELECT * FROM orders ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	return &model.OrderListResponse{Orders: orders, Total: len(orders)}, nil
}

// KitchenQueue returns the orders the kitchen still has to cook, oldest
// first.
func (s *OrderService) KitchenQueue() ([]model.Order, error) {
	orders := []model.Order{}
	err := s.db.Select(&orders,
		"SELECT * FROM orders WHERE status IN ($1, $2) ORDER BY created_at",
		model.OrderStatusPlaced, model.OrderStatusPreparing)
	return orders, err
}

// OpenOrderForTable returns the table's current open order, if any
func (s *OrderService) OpenOrderForTable(tableID int) (*model.OrderResponse, error) {
	var order model.Order
	err := s.db.Get(&order,
		`SELECT * FROM orders
         WHERE table_id = $1 AND status NOT IN ($2, $3)
         ORDER BY created_at DESC LIMIT 1`,
		tableID, model.OrderStatusPaid, model.OrderStatusCancelled)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.GetOrder(order.ID)
}

// MarkPaid is the payment service's hook: it walks the order through
// served to paid regardless of where it currently is in the open part
// of the lifecycle.
func (s *OrderService) MarkPaid(orderID int) (*model.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	for order.Status != model.OrderStatusPaid {
		next, ok := nextToward(order.Status, model.OrderStatusPaid)
		if !ok {
			return nil, fmt.Errorf("%w: cannot pay order in status %s", ErrInvalidTransition, order.Status)
		}
		order, err = s.UpdateStatus(orderID, next)
		if err != nil {
			return nil, err
		}
	}
	log.Printf("[ORDER] Order %d marked paid", orderID)
	return order, nil
}

// nextToward returns the single forward step from a status toward the
// target, excluding cancellation.
func nextToward(from, target string) (string, bool) {
	for _, next := range transitions[from] {
		if next == model.OrderStatusCancelled && target != model.OrderStatusCancelled {
			continue
		}
		return next, true
	}
	return "", false
}
