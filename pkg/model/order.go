package model

import "time"

// Order statuses. Transitions are validated in the order service.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order represents a customer order for a table
type Order struct {
	ID          int       `json:"id" db:"id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	TableID     int       `json:"table_id" db:"table_id"`
	WaiterID    int       `json:"waiter_id" db:"waiter_id"`
	Status      string    `json:"status" db:"status"`
	TotalCents  int       `json:"total_cents" db:"total_cents"`
	Note        string    `json:"note" db:"note"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem is a single menu item line on an order. The unit price is
// captured at order time so later menu edits do not change history.
type OrderItem struct {
	ID             int    `json:"id" db:"id"`
	OrderID        int    `json:"order_id" db:"order_id"`
	MenuItemID     int    `json:"menu_item_id" db:"menu_item_id"`
	Name           string `json:"name" db:"name"`
	Quantity       int    `json:"quantity" db:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents" db:"unit_price_cents"`
	Note           string `json:"note" db:"note"`
}

// OrderItemOption is a chosen customization on an order line
type OrderItemOption struct {
	ID              int    `json:"id" db:"id"`
	OrderItemID     int    `json:"order_item_id" db:"order_item_id"`
	Name            string `json:"name" db:"name"`
	PriceDeltaCents int    `json:"price_delta_cents" db:"price_delta_cents"`
}

// OrderLineRequest is one requested line of a new or amended order
type OrderLineRequest struct {
	MenuItemID int    `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	OptionIDs  []int  `json:"option_ids"`
	Note       string `json:"note"`
}

// OrderCreateRequest represents the request to place a new order
type OrderCreateRequest struct {
	TableID int                `json:"table_id" binding:"required"`
	Lines   []OrderLineRequest `json:"lines" binding:"required,min=1"`
	Note    string             `json:"note"`
}

// OrderStatusRequest represents a status transition request
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is an order with its lines inlined
type OrderResponse struct {
	Order
	Items []OrderItemWithOptions `json:"items"`
}

// OrderItemWithOptions is an order line with its chosen options
type OrderItemWithOptions struct {
	OrderItem
	Options []OrderItemOption `json:"options"`
}

// OrderListResponse represents the response for order listing
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
