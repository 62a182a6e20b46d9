// Package analytics computes reporting aggregates for the admin
// dashboard. All heavy lifting stays in SQL; paid orders are the only
// ones that count as revenue.
package analytics

import (
	"time"

	"github.com/jmoiron/sqlx"

	"restaurant-manager-go/pkg/model"
)

// AnalyticsService handles reporting queries
type AnalyticsService struct {
	db *sqlx.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *sqlx.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// DailyRevenue returns orders and revenue per day over [from, to]
func (s *AnalyticsService) DailyRevenue(from, to time.Time) ([]model.DailyRevenue, error) {
	rows := []model.DailyRevenue{}
	err := s.db.Select(&rows, `
        SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day,
               COUNT(*) AS orders,
               COALESCE(SUM(total_cents), 0) AS revenue_cents
        FROM orders
        WHERE status = $1 AND created_at >= $2 AND created_at < $3
        GROUP BY created_at::date
        ORDER BY day`,
		model.OrderStatusPaid, from, to)
	return rows, err
}

// TopItems returns the best-selling menu items over [from, to]
func (s *AnalyticsService) TopItems(from, to time.Time, limit int) ([]model.ItemSales, error) {
	if limit <= 0 {
		limit = 10
	}

	rows := []model.ItemSales{}
	err := s.db.Select(&rows, `
        SELECT oi.menu_item_id,
               oi.name,
               SUM(oi.quantity) AS quantity,
               SUM(oi.quantity * oi.unit_price_cents) AS revenue_cents
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.status = $1 AND o.created_at >= $2 AND o.created_at < $3
        GROUP BY oi.menu_item_id, oi.name
        ORDER BY quantity DESC, revenue_cents DESC
        LIMIT $4`,
		model.OrderStatusPaid, from, to, limit)
	return rows, err
}

// TableActivity returns orders and revenue per table over [from, to],
// with the owning location's name when assigned
func (s *AnalyticsService) TableActivity(from, to time.Time) ([]model.TableActivity, error) {
	rows := []model.TableActivity{}
	err := s.db.Select(&rows, `
        SELECT t.id AS table_id,
               t.name AS table_name,
               COALESCE(l.name, '') AS location_name,
               COUNT(o.id) AS orders,
               COALESCE(SUM(o.total_cents), 0) AS revenue_cents
        FROM tables t
        LEFT JOIN locations l ON l.id = t.location_id
        LEFT JOIN orders o
               ON o.table_id = t.id AND o.status = $1
              AND o.created_at >= $2 AND o.created_at < $3
        GROUP BY t.id, t.name, l.name
        ORDER BY revenue_cents DESC, t.id`,
		model.OrderStatusPaid, from, to)
	return rows, err
}
