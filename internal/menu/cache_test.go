package menu

import (
	"context"
	"testing"

	"restaurant-manager-go/pkg/model"
)

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if got, ok := c.Get(ctx); ok || got != nil {
		t.Errorf("nil cache Get = (%v, %v), want (nil, false)", got, ok)
	}
	// Set and Invalidate on a nil cache must be no-ops.
	c.Set(ctx, &model.MenuResponse{})
	c.Invalidate(ctx)
}

func TestNewCacheEmptyAddrDisables(t *testing.T) {
	if c := NewCache(""); c != nil {
		t.Errorf("NewCache(\"\") = %v, want nil", c)
	}
}
