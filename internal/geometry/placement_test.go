package geometry

import "testing"

func TestFindNonOverlappingPlacementNoObstacles(t *testing.T) {
	proposed := Rect{X: 37, Y: 91, Width: 50, Height: 50}
	got := FindNonOverlappingPlacement(proposed, nil, 0)
	if got != proposed {
		t.Errorf("placement with no obstacles = %+v, want %+v unchanged", got, proposed)
	}
}

func TestFindNonOverlappingPlacementClearProposal(t *testing.T) {
	proposed := Rect{X: 200, Y: 200, Width: 50, Height: 50}
	obstacles := []Rect{
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 60, Y: 0, Width: 50, Height: 50},
	}
	got := FindNonOverlappingPlacement(proposed, obstacles, 0)
	if got != proposed {
		t.Errorf("clear proposal moved: got %+v, want %+v", got, proposed)
	}
}

func TestFindNonOverlappingPlacementSingleObstacle(t *testing.T) {
	// Proposal sits exactly on the obstacle; the first probe pushes it
	// right by the obstacle width plus the 10-unit margin.
	proposed := Rect{X: 0, Y: 0, Width: 50, Height: 50}
	obstacles := []Rect{{X: 0, Y: 0, Width: 50, Height: 50}}

	got := FindNonOverlappingPlacement(proposed, obstacles, 0)
	want := Rect{X: 60, Y: 0, Width: 50, Height: 50}
	if got != want {
		t.Errorf("placement = %+v, want %+v", got, want)
	}
}

func TestFindNonOverlappingPlacementOccupiedRow(t *testing.T) {
	// A row of tables at (0,0), (60,0), (120,0). The right probe lands
	// on the second table and the left probe would go negative, so the
	// search must settle on some other free slot.
	proposed := Rect{X: 0, Y: 0, Width: 50, Height: 50}
	obstacles := []Rect{
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 60, Y: 0, Width: 50, Height: 50},
		{X: 120, Y: 0, Width: 50, Height: 50},
	}

	got := FindNonOverlappingPlacement(proposed, obstacles, 0)
	for _, o := range obstacles {
		if Overlaps(got, o) {
			t.Fatalf("placement %+v overlaps obstacle %+v", got, o)
		}
	}
	if got.X < 0 || got.Y < 0 {
		t.Errorf("placement %+v left the non-negative quadrant", got)
	}
	if got.Width != proposed.Width || got.Height != proposed.Height {
		t.Errorf("placement %+v changed dimensions, want %vx%v", got, proposed.Width, proposed.Height)
	}
}

func TestFindNonOverlappingPlacementPrefersFirstClearProbe(t *testing.T) {
	// Right slot blocked, left slot free: probe order is right then
	// left, so the left slot wins.
	proposed := Rect{X: 200, Y: 0, Width: 50, Height: 50}
	obstacles := []Rect{
		{X: 200, Y: 0, Width: 50, Height: 50},
		{X: 260, Y: 0, Width: 50, Height: 50},
	}

	got := FindNonOverlappingPlacement(proposed, obstacles, 0)
	want := Rect{X: 140, Y: 0, Width: 50, Height: 50}
	if got != want {
		t.Errorf("placement = %+v, want %+v", got, want)
	}
}

func TestFindNonOverlappingPlacementSolvableClusters(t *testing.T) {
	// Small non-enclosing obstacle sets always admit a solution within
	// the probe space; the result must clear every obstacle.
	tests := []struct {
		name      string
		proposed  Rect
		obstacles []Rect
	}{
		{
			name:     "TwoStacked",
			proposed: Rect{X: 100, Y: 100, Width: 50, Height: 50},
			obstacles: []Rect{
				{X: 100, Y: 100, Width: 50, Height: 50},
				{X: 100, Y: 160, Width: 50, Height: 50},
			},
		},
		{
			name:     "LShape",
			proposed: Rect{X: 100, Y: 100, Width: 60, Height: 60},
			obstacles: []Rect{
				{X: 90, Y: 90, Width: 80, Height: 80},
				{X: 180, Y: 90, Width: 80, Height: 80},
				{X: 90, Y: 180, Width: 80, Height: 80},
			},
		},
		{
			name:     "DifferentSizes",
			proposed: Rect{X: 40, Y: 40, Width: 120, Height: 80},
			obstacles: []Rect{
				{X: 0, Y: 0, Width: 200, Height: 140},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindNonOverlappingPlacement(tt.proposed, tt.obstacles, 0)
			for _, o := range tt.obstacles {
				if Overlaps(got, o) {
					t.Fatalf("placement %+v overlaps obstacle %+v", got, o)
				}
			}
		})
	}
}

func TestFindNonOverlappingPlacementFailOpen(t *testing.T) {
	// Obstacles surround the proposal so tightly that every probe and
	// every retry stays blocked; the original proposal must come back
	// untouched.
	proposed := Rect{X: 500, Y: 500, Width: 50, Height: 50}
	var obstacles []Rect
	// Dense wall covering the whole reachable neighborhood.
	for x := 0.0; x <= 1200; x += 40 {
		for y := 0.0; y <= 1200; y += 40 {
			obstacles = append(obstacles, Rect{X: x, Y: y, Width: 45, Height: 45})
		}
	}

	got := FindNonOverlappingPlacement(proposed, obstacles, 10)
	if got != proposed {
		t.Errorf("fail-open placement = %+v, want original %+v", got, proposed)
	}
}

func TestFindNonOverlappingPlacementTerminates(t *testing.T) {
	// Even with a pathological obstacle equal to the proposal repeated
	// many times, the attempt budget bounds the loop.
	proposed := Rect{X: 0, Y: 0, Width: 50, Height: 50}
	obstacles := make([]Rect, 200)
	for i := range obstacles {
		obstacles[i] = Rect{X: 0, Y: 0, Width: 50, Height: 50}
	}
	got := FindNonOverlappingPlacement(proposed, obstacles, 3)
	if Overlaps(got, obstacles[0]) && got != proposed {
		t.Errorf("overlapping result %+v is not the fail-open original %+v", got, proposed)
	}
}
