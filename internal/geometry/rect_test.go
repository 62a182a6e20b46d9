package geometry

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "Disjoint",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 100, Y: 100, Width: 50, Height: 50},
			want: false,
		},
		{
			name: "Identical",
			a:    Rect{X: 10, Y: 10, Width: 50, Height: 50},
			b:    Rect{X: 10, Y: 10, Width: 50, Height: 50},
			want: true,
		},
		{
			name: "PartialOverlap",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 25, Y: 25, Width: 50, Height: 50},
			want: true,
		},
		{
			name: "Contained",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:    Rect{X: 20, Y: 20, Width: 10, Height: 10},
			want: true,
		},
		{
			name: "TouchingRightEdge",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 50, Y: 0, Width: 50, Height: 50},
			want: false,
		},
		{
			name: "TouchingBottomEdge",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 0, Y: 50, Width: 50, Height: 50},
			want: false,
		},
		{
			name: "TouchingCorner",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 50, Y: 50, Width: 50, Height: 50},
			want: false,
		},
		{
			name: "OverlapByOneUnit",
			a:    Rect{X: 0, Y: 0, Width: 51, Height: 51},
			b:    Rect{X: 50, Y: 50, Width: 50, Height: 50},
			want: true,
		},
		{
			name: "SameColumnDifferentRows",
			a:    Rect{X: 0, Y: 0, Width: 50, Height: 50},
			b:    Rect{X: 0, Y: 120, Width: 50, Height: 50},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		grid float64
		want float64
	}{
		{"AlreadySnapped", 40, 20, 40},
		{"RoundsDown", 47, 20, 40},
		{"RoundsUp", 53, 20, 60},
		{"HalfAwayFromZero", 30, 20, 40},
		{"NegativeHalfAwayFromZero", -30, 20, -40},
		{"Zero", 0, 20, 0},
		{"SmallGrid", 7.4, 5, 5},
		{"ZeroGridUnchanged", 33, 0, 33},
		{"NegativeGridUnchanged", 33, -10, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapToGrid(tt.v, tt.grid)
			if got != tt.want {
				t.Errorf("SnapToGrid(%v, %v) = %v, want %v", tt.v, tt.grid, got, tt.want)
			}
			// Idempotence.
			if again := SnapToGrid(got, tt.grid); again != got {
				t.Errorf("SnapToGrid not idempotent: %v -> %v -> %v", tt.v, got, again)
			}
		})
	}
}

func TestSnapRect(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{
			name: "RoundsEachField",
			r:    Rect{X: 47, Y: 53, Width: 108, Height: 91},
			want: Rect{X: 40, Y: 60, Width: 100, Height: 100},
		},
		{
			name: "RoundsDown",
			r:    Rect{X: 41, Y: 49, Width: 104, Height: 88},
			want: Rect{X: 40, Y: 40, Width: 100, Height: 80},
		},
		{
			name: "AlreadySnapped",
			r:    Rect{X: 40, Y: 60, Width: 100, Height: 80},
			want: Rect{X: 40, Y: 60, Width: 100, Height: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapRect(tt.r, 20); got != tt.want {
				t.Errorf("SnapRect(%+v) = %+v, want %+v", tt.r, got, tt.want)
			}
		})
	}
}

func TestClampToBounds(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		bounds Size
		want   Rect
	}{
		{
			name:   "Inside",
			r:      Rect{X: 10, Y: 10, Width: 50, Height: 50},
			bounds: Size{Width: 200, Height: 200},
			want:   Rect{X: 10, Y: 10, Width: 50, Height: 50},
		},
		{
			name:   "PastRightEdge",
			r:      Rect{X: 180, Y: 10, Width: 50, Height: 50},
			bounds: Size{Width: 200, Height: 200},
			want:   Rect{X: 150, Y: 10, Width: 50, Height: 50},
		},
		{
			name:   "NegativePosition",
			r:      Rect{X: -30, Y: -5, Width: 50, Height: 50},
			bounds: Size{Width: 200, Height: 200},
			want:   Rect{X: 0, Y: 0, Width: 50, Height: 50},
		},
		{
			name:   "PastBottomEdge",
			r:      Rect{X: 10, Y: 500, Width: 50, Height: 50},
			bounds: Size{Width: 200, Height: 200},
			want:   Rect{X: 10, Y: 150, Width: 50, Height: 50},
		},
		{
			name:   "BoundsSmallerThanRect",
			r:      Rect{X: 40, Y: 40, Width: 300, Height: 300},
			bounds: Size{Width: 200, Height: 200},
			want:   Rect{X: 0, Y: 0, Width: 300, Height: 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToBounds(tt.r, tt.bounds)
			if got != tt.want {
				t.Errorf("ClampToBounds(%+v, %+v) = %+v, want %+v", tt.r, tt.bounds, got, tt.want)
			}
			if tt.r.Width <= tt.bounds.Width && tt.r.Height <= tt.bounds.Height {
				if got.X < 0 || got.Y < 0 ||
					got.X+got.Width > tt.bounds.Width ||
					got.Y+got.Height > tt.bounds.Height {
					t.Errorf("result %+v escapes bounds %+v", got, tt.bounds)
				}
			}
		})
	}
}

func TestCanvasBounds(t *testing.T) {
	tests := []struct {
		name    string
		regions []Rect
		want    Bounds
	}{
		{
			name:    "EmptyDefault",
			regions: nil,
			want:    Bounds{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600},
		},
		{
			name:    "SingleRegion",
			regions: []Rect{{X: 100, Y: 100, Width: 200, Height: 150}},
			want:    Bounds{MinX: 50, MinY: 50, MaxX: 350, MaxY: 300},
		},
		{
			name: "TwoRegions",
			regions: []Rect{
				{X: 100, Y: 100, Width: 200, Height: 150},
				{X: 500, Y: 60, Width: 100, Height: 400},
			},
			want: Bounds{MinX: 50, MinY: 10, MaxX: 650, MaxY: 510},
		},
		{
			name:    "RegionNearOrigin",
			regions: []Rect{{X: 20, Y: 0, Width: 100, Height: 100}},
			want:    Bounds{MinX: -30, MinY: -50, MaxX: 170, MaxY: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanvasBounds(tt.regions)
			if got != tt.want {
				t.Errorf("CanvasBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Rect{X: 0, Y: 0, Width: 50, Height: 50}
	if err := Validate(valid); err != nil {
		t.Errorf("Validate(%+v) = %v, want nil", valid, err)
	}

	bad := []Rect{
		{X: math.NaN(), Y: 0, Width: 50, Height: 50},
		{X: 0, Y: math.Inf(1), Width: 50, Height: 50},
		{X: 0, Y: 0, Width: -1, Height: 50},
		{X: 0, Y: 0, Width: 50, Height: -1},
		{X: 0, Y: 0, Width: math.Inf(-1), Height: 50},
	}
	for _, r := range bad {
		if err := Validate(r); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", r)
		}
	}
}
