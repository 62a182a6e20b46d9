// Package menu owns menu content: categories, items, customization
// options, the public menu read path (cached in Redis when available)
// and the related-items suggestions.
package menu

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"restaurant-manager-go/pkg/model"
)

// Sentinel errors matched by the HTTP layer.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("menu item not found")
)

// MenuService handles menu operations
type MenuService struct {
	db    *sqlx.DB
	cache *Cache
}

// NewMenuService creates a new menu service. cache may be nil when
// Redis is not configured.
func NewMenuService(db *sqlx.DB, cache *Cache) *MenuService {
	return &MenuService{db: db, cache: cache}
}

// GetPublicMenu returns the customer-facing menu: active categories
// with their available items and options. Read-through cached.
func (s *MenuService) GetPublicMenu(ctx context.Context) (*model.MenuResponse, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	var categories []model.MenuCategory
	err := s.db.Select(&categories,
		"SELECT * FROM menu_categories WHERE active = TRUE ORDER BY sort_order, name")
	if err != nil {
		return nil, err
	}

	resp := &model.MenuResponse{Categories: []model.MenuCategoryWithItems{}}
	for _, cat := range categories {
		var items []model.MenuItem
		err = s.db.Select(&items,
			"SELECT * FROM menu_items WHERE category_id = $1 AND available = TRUE ORDER BY name", cat.ID)
		if err != nil {
			return nil, err
		}

		withItems := model.MenuCategoryWithItems{MenuCategory: cat, Items: []model.MenuItemWithOptions{}}
		for _, item := range items {
			options, err := s.ListOptions(item.ID)
			if err != nil {
				return nil, err
			}
			withItems.Items = append(withItems.Items, model.MenuItemWithOptions{MenuItem: item, Options: options})
		}
		resp.Categories = append(resp.Categories, withItems)
	}

	s.cache.Set(ctx, resp)
	return resp, nil
}

// ListCategories fetches all categories, including inactive ones
func (s *MenuService) ListCategories() ([]model.MenuCategory, error) {
	categories := []model.MenuCategory{}
	err := s.db.Select(&categories, "SELECT * FROM menu_categories ORDER BY sort_order, name")
	return categories, err
}

// CreateCategory adds a menu category
func (s *MenuService) CreateCategory(ctx context.Context, req model.MenuCategoryRequest) (*model.MenuCategory, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var cat model.MenuCategory
	err := s.db.Get(&cat,
		`INSERT INTO menu_categories (name, sort_order, active)
         VALUES ($1, $2, $3)
         RETURNING *`,
		req.Name, req.SortOrder, active)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &cat, nil
}

// UpdateCategory updates name, ordering and visibility of a category
func (s *MenuService) UpdateCategory(ctx context.Context, categoryID int, req model.MenuCategoryRequest) (*model.MenuCategory, error) {
	current, err := s.getCategory(categoryID)
	if err != nil {
		return nil, err
	}

	active := current.Active
	if req.Active != nil {
		active = *req.Active
	}

	var cat model.MenuCategory
	err = s.db.Get(&cat,
		`UPDATE menu_categories SET name = $1, sort_order = $2, active = $3
         WHERE id = $4
         RETURNING *`,
		req.Name, req.SortOrder, active, categoryID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &cat, nil
}

// DeleteCategory removes an empty category
func (s *MenuService) DeleteCategory(ctx context.Context, categoryID int) error {
	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM menu_items WHERE category_id = $1", categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category still has items")
	}

	res, err := s.db.Exec("DELETE FROM menu_categories WHERE id = $1", categoryID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrCategoryNotFound
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *MenuService) getCategory(categoryID int) (*model.MenuCategory, error) {
	var cat model.MenuCategory
	err := s.db.Get(&cat, "SELECT * FROM menu_categories WHERE id = $1", categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// ListItems fetches all items of a category
func (s *MenuService) ListItems(categoryID int) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	err := s.db.Select(&items, "SELECT * FROM menu_items WHERE category_id = $1 ORDER BY name", categoryID)
	return items, err
}

// GetItem fetches a single menu item
func (s *MenuService) GetItem(itemID int) (*model.MenuItem, error) {
	var item model.MenuItem
	err := s.db.Get(&item, "SELECT * FROM menu_items WHERE id = $1", itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem adds a menu item
func (s *MenuService) CreateItem(ctx context.Context, req model.MenuItemRequest) (*model.MenuItem, error) {
	if _, err := s.getCategory(req.CategoryID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	var item model.MenuItem
	err := s.db.Get(&item,
		`INSERT INTO menu_items (category_id, name, description, price_cents, image_url, available, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
         RETURNING *`,
		req.CategoryID, req.Name, req.Description, req.PriceCents, req.ImageURL, available, time.Now())
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &item, nil
}

// UpdateItem updates a menu item
func (s *MenuService) UpdateItem(ctx context.Context, itemID int, req model.MenuItemRequest) (*model.MenuItem, error) {
	current, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	available := current.Available
	if req.Available != nil {
		available = *req.Available
	}

	var item model.MenuItem
	err = s.db.Get(&item,
		`UPDATE menu_items
         SET category_id = $1, name = $2, description = $3, price_cents = $4, image_url = $5, available = $6, updated_at = $7
         WHERE id = $8
         RETURNING *`,
		req.CategoryID, req.Name, req.Description, req.PriceCents, req.ImageURL, available, time.Now(), itemID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &item, nil
}

// DeleteItem removes a menu item and its options
func (s *MenuService) DeleteItem(ctx context.Context, itemID int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM menu_options WHERE menu_item_id = $1", itemID)
	if err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM menu_items WHERE id = $1", itemID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrItemNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ListOptions fetches the customization options of an item
func (s *MenuService) ListOptions(itemID int) ([]model.MenuOption, error) {
	options := []model.MenuOption{}
	err := s.db.Select(&options, "SELECT * FROM menu_options WHERE menu_item_id = $1 ORDER BY id", itemID)
	return options, err
}

// CreateOption adds a customization option to an item
func (s *MenuService) CreateOption(ctx context.Context, itemID int, req model.MenuOptionRequest) (*model.MenuOption, error) {
	if _, err := s.GetItem(itemID); err != nil {
		return nil, err
	}

	var opt model.MenuOption
	err := s.db.Get(&opt,
		`INSERT INTO menu_options (menu_item_id, name, price_delta_cents)
         VALUES ($1, $2, $3)
         RETURNING *`,
		itemID, req.Name, req.PriceDeltaCents)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &opt, nil
}

// DeleteOption removes a customization option
func (s *MenuService) DeleteOption(ctx context.Context, optionID int) error {
	res, err := s.db.Exec("DELETE FROM menu_options WHERE id = $1", optionID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("option not found")
	}
	s.cache.Invalidate(ctx)
	return nil
}
