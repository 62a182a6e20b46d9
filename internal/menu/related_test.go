package menu

import (
	"testing"

	"restaurant-manager-go/pkg/model"
)

func item(id, categoryID, priceCents int, name string) model.MenuItem {
	return model.MenuItem{ID: id, CategoryID: categoryID, PriceCents: priceCents, Name: name}
}

func TestRankRelated(t *testing.T) {
	target := item(1, 10, 1200, "Margherita")
	candidates := []model.MenuItem{
		item(2, 10, 1400, "Quattro Formaggi"), // same category, no co-orders
		item(3, 20, 300, "Cola"),              // co-ordered often
		item(4, 20, 350, "Lemonade"),          // co-ordered rarely
		item(5, 30, 700, "Tiramisu"),          // never together, other category
	}
	coOrders := map[int]int{3: 5, 4: 1}

	got := rankRelated(target, candidates, coOrders, 3)

	wantIDs := []int{3, 4, 2}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d related items, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: got item %d, want %d (result %+v)", i, got[i].ID, want, got)
		}
	}
}

func TestRankRelatedDropsZeroScores(t *testing.T) {
	target := item(1, 10, 1200, "Margherita")
	candidates := []model.MenuItem{
		item(5, 30, 700, "Tiramisu"),
		item(6, 40, 900, "Espresso"),
	}

	got := rankRelated(target, candidates, nil, 5)
	if len(got) != 0 {
		t.Errorf("unrelated items suggested: %+v", got)
	}
}

func TestRankRelatedTieBreaks(t *testing.T) {
	target := item(1, 10, 1200, "Margherita")
	// Same score (same category, no co-orders): cheaper first, then ID.
	candidates := []model.MenuItem{
		item(2, 10, 1400, "Quattro Formaggi"),
		item(3, 10, 900, "Marinara"),
		item(4, 10, 900, "Bianca"),
	}

	got := rankRelated(target, candidates, nil, 5)
	wantIDs := []int{3, 4, 2}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("tie break order %v, want IDs %v", got, wantIDs)
		}
	}
}

func TestRankRelatedLimit(t *testing.T) {
	target := item(1, 10, 1000, "Margherita")
	var candidates []model.MenuItem
	coOrders := map[int]int{}
	for id := 2; id <= 12; id++ {
		candidates = append(candidates, item(id, 10, 1000, "x"))
		coOrders[id] = id
	}

	got := rankRelated(target, candidates, coOrders, 4)
	if len(got) != 4 {
		t.Fatalf("got %d items, want 4", len(got))
	}
	// Highest co-order count first.
	if got[0].ID != 12 {
		t.Errorf("top item = %d, want 12", got[0].ID)
	}

	// Non-positive limit falls back to the default of 5.
	got = rankRelated(target, candidates, coOrders, 0)
	if len(got) != 5 {
		t.Errorf("default limit gave %d items, want 5", len(got))
	}
}
