package model

// DailyRevenue is one row of the revenue-by-day report
type DailyRevenue struct {
	Day          string `json:"day" db:"day"`
	Orders       int    `json:"orders" db:"orders"`
	RevenueCents int    `json:"revenue_cents" db:"revenue_cents"`
}

// ItemSales is one row of the top-selling-items report
type ItemSales struct {
	MenuItemID   int    `json:"menu_item_id" db:"menu_item_id"`
	Name         string `json:"name" db:"name"`
	Quantity     int    `json:"quantity" db:"quantity"`
	RevenueCents int    `json:"revenue_cents" db:"revenue_cents"`
}

// TableActivity is one row of the per-table report
type TableActivity struct {
	TableID      int    `json:"table_id" db:"table_id"`
	TableName    string `json:"table_name" db:"table_name"`
	LocationName string `json:"location_name" db:"location_name"`
	Orders       int    `json:"orders" db:"orders"`
	RevenueCents int    `json:"revenue_cents" db:"revenue_cents"`
}
