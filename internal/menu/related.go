package menu

import (
	"sort"

	"restaurant-manager-go/pkg/model"
)

// Related-items scoring weights. Co-occurrence in past orders counts
// for more than merely sharing a category.
const (
	coOccurrenceWeight = 3
	sameCategoryWeight = 1
)

// RelatedItems suggests up to limit items for the given one, scored by
// how often they were ordered together plus a same-category bonus.
func (s *MenuService) RelatedItems(itemID, limit int) (*model.RelatedItemsResponse, error) {
	target, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	candidates := []model.MenuItem{}
	err = s.db.Select(&candidates,
		"SELECT * FROM menu_items WHERE id != $1 AND available = TRUE", itemID)
	if err != nil {
		return nil, err
	}

	// How often each candidate appears on the same order as the target.
	type coRow struct {
		MenuItemID int `db:"menu_item_id"`
		Count      int `db:"count"`
	}
	rows := []coRow{}
	err = s.db.Select(&rows, `
        SELECT other.menu_item_id, COUNT(*) AS count
        FROM order_items base
        JOIN order_items other
          ON other.order_id = base.order_id AND other.menu_item_id != base.menu_item_id
        WHERE base.menu_item_id = $1
        GROUP BY other.menu_item_id`, itemID)
	if err != nil {
		return nil, err
	}

	coOrders := make(map[int]int, len(rows))
	for _, r := range rows {
		coOrders[r.MenuItemID] = r.Count
	}

	return &model.RelatedItemsResponse{
		ItemID:  itemID,
		Related: rankRelated(*target, candidates, coOrders, limit),
	}, nil
}

// rankRelated orders candidates by score and returns the top limit.
// Ties break toward the cheaper item so suggestions skew upsell-safe,
// then by ID for determinism.
func rankRelated(target model.MenuItem, candidates []model.MenuItem, coOrders map[int]int, limit int) []model.MenuItem {
	if limit <= 0 {
		limit = 5
	}

	type scored struct {
		item  model.MenuItem
		score int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		score := coOrders[c.ID] * coOccurrenceWeight
		if c.CategoryID == target.CategoryID {
			score += sameCategoryWeight
		}
		if score == 0 {
			continue
		}
		ranked = append(ranked, scored{item: c, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].item.PriceCents != ranked[j].item.PriceCents {
			return ranked[i].item.PriceCents < ranked[j].item.PriceCents
		}
		return ranked[i].item.ID < ranked[j].item.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]model.MenuItem, len(ranked))
	for i, r := range ranked {
		items[i] = r.item
	}
	return items
}
