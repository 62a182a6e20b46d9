package layout

import (
	"database/sql"
	"testing"

	"restaurant-manager-go/internal/geometry"
	"restaurant-manager-go/pkg/model"
)

func TestLocationRectsExcludesSelf(t *testing.T) {
	locations := []model.Location{
		{ID: 1, X: 0, Y: 0, Width: 200, Height: 200},
		{ID: 2, X: 300, Y: 0, Width: 200, Height: 200},
		{ID: 3, X: 0, Y: 300, Width: 200, Height: 200},
	}

	rects := locationRects(locations, 2)
	if len(rects) != 2 {
		t.Fatalf("got %d obstacle rects, want 2", len(rects))
	}
	for _, r := range rects {
		if r.X == 300 {
			t.Errorf("excluded location still present in %+v", rects)
		}
	}

	// Exclude ID 0 matches nothing: all locations are obstacles.
	if got := len(locationRects(locations, 0)); got != 3 {
		t.Errorf("got %d obstacle rects, want 3", got)
	}
}

func TestTableRects(t *testing.T) {
	tables := []model.Table{
		{ID: 10, X: 20, Y: 20, Width: 50, Height: 50},
		{ID: 11, X: 80, Y: 20, Width: 50, Height: 50, LocationID: sql.NullInt64{Int64: 1, Valid: true}},
	}

	rects := tableRects(tables, 10)
	want := []geometry.Rect{{X: 80, Y: 20, Width: 50, Height: 50}}
	if len(rects) != 1 || rects[0] != want[0] {
		t.Errorf("tableRects = %+v, want %+v", rects, want)
	}
}

func TestReclampTablesAfterShrink(t *testing.T) {
	bounds := geometry.Size{Width: 200, Height: 200}

	t.Run("EscapedTablePulledBackIn", func(t *testing.T) {
		tables := []model.Table{
			{ID: 1, X: 20, Y: 20, Width: 50, Height: 50},
			{ID: 2, X: 300, Y: 100, Width: 50, Height: 50},
		}

		moves := reclampTables(tables, bounds)
		if len(moves) != 1 {
			t.Fatalf("got %d moves, want 1: %+v", len(moves), moves)
		}
		want := geometry.Rect{X: 150, Y: 100, Width: 50, Height: 50}
		if moves[2] != want {
			t.Errorf("table 2 moved to %+v, want %+v", moves[2], want)
		}
	})

	t.Run("ClampedTableAvoidsSibling", func(t *testing.T) {
		tables := []model.Table{
			{ID: 1, X: 150, Y: 100, Width: 50, Height: 50},
			{ID: 2, X: 300, Y: 100, Width: 50, Height: 50},
		}

		moves := reclampTables(tables, bounds)
		if _, ok := moves[1]; ok {
			t.Error("table 1 still fits but was moved")
		}
		got, ok := moves[2]
		if !ok {
			t.Fatal("escaped table 2 was not moved")
		}
		sibling := geometry.Rect{X: 150, Y: 100, Width: 50, Height: 50}
		if geometry.Overlaps(got, sibling) {
			t.Errorf("reclamped table %+v overlaps sibling %+v", got, sibling)
		}
	})

	t.Run("FittingTablesUntouched", func(t *testing.T) {
		tables := []model.Table{
			{ID: 1, X: 0, Y: 0, Width: 50, Height: 50},
			{ID: 2, X: 140, Y: 140, Width: 50, Height: 50},
		}
		if moves := reclampTables(tables, bounds); len(moves) != 0 {
			t.Errorf("fitting tables moved: %+v", moves)
		}
	})
}

func TestCanvasExtentMatchesGeometryBounds(t *testing.T) {
	locations := []model.Location{{ID: 1, X: 100, Y: 100, Width: 200, Height: 150}}
	bounds := geometry.CanvasBounds(locationRects(locations, 0))
	extent := model.CanvasExtent(bounds)

	want := model.CanvasExtent{MinX: 50, MinY: 50, MaxX: 350, MaxY: 300}
	if extent != want {
		t.Errorf("canvas extent = %+v, want %+v", extent, want)
	}
}
