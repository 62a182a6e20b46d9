package model

import "time"

// MenuCategory groups menu items for display
type MenuCategory struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
	Active    bool   `json:"active" db:"active"`
}

// MenuItem represents a dish or drink on the menu. Prices are stored in
// cents to avoid floating point money.
type MenuItem struct {
	ID          int       `json:"id" db:"id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	PriceCents  int       `json:"price_cents" db:"price_cents"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MenuOption is a customization choice for an item (extra cheese,
// size upgrade, ...) with a price delta in cents.
type MenuOption struct {
	ID              int    `json:"id" db:"id"`
	MenuItemID      int    `json:"menu_item_id" db:"menu_item_id"`
	Name            string `json:"name" db:"name"`
	PriceDeltaCents int    `json:"price_delta_cents" db:"price_delta_cents"`
}

// MenuCategoryRequest represents a create/update request for a category
type MenuCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
	Active    *bool  `json:"active"`
}

// MenuItemRequest represents a create/update request for a menu item
type MenuItemRequest struct {
	CategoryID  int    `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents" binding:"required,min=0"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
}

// MenuOptionRequest represents a create request for an item option
type MenuOptionRequest struct {
	Name            string `json:"name" binding:"required"`
	PriceDeltaCents int    `json:"price_delta_cents"`
}

// MenuResponse is the public menu served to customers
type MenuResponse struct {
	Categories []MenuCategoryWithItems `json:"categories"`
}

// MenuCategoryWithItems is a category with its visible items inlined
type MenuCategoryWithItems struct {
	MenuCategory
	Items []MenuItemWithOptions `json:"items"`
}

// MenuItemWithOptions is an item with its customization options inlined
type MenuItemWithOptions struct {
	MenuItem
	Options []MenuOption `json:"options"`
}

// RelatedItemsResponse lists items frequently ordered together with one
type RelatedItemsResponse struct {
	ItemID  int        `json:"item_id"`
	Related []MenuItem `json:"related"`
}
