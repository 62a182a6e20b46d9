package geometry

// FindNonOverlappingPlacement searches for a position at or near the
// proposed rectangle that overlaps none of the obstacles.
//
// The search is a fixed six-direction probe around the first obstacle
// hit, not a packer: for each overlap it tries right, left, down, up and
// the two diagonal combinations, each offset by PlacementMargin, and
// accepts the first candidate clear of every obstacle. Candidates that
// would leave the non-negative quadrant are skipped. When no probe
// clears, the candidate overlapping the fewest obstacles seeds the next
// iteration, up to maxAttempts. If the budget runs out the ORIGINAL
// proposal is returned unchanged. The caller may end up persisting an
// overlapping rectangle, which is the accepted fail-open behavior.
//
// maxAttempts <= 0 uses MaxPlacementAttempts.
func FindNonOverlappingPlacement(proposed Rect, obstacles []Rect, maxAttempts int) Rect {
	if maxAttempts <= 0 {
		maxAttempts = MaxPlacementAttempts
	}

	current := proposed
	for attempt := 0; attempt < maxAttempts; attempt++ {
		hit, ok := firstOverlap(current, obstacles)
		if !ok {
			return current
		}

		candidates := []Rect{
			{X: hit.X + hit.Width + PlacementMargin, Y: current.Y, Width: current.Width, Height: current.Height},
			{X: hit.X - current.Width - PlacementMargin, Y: current.Y, Width: current.Width, Height: current.Height},
			{X: current.X, Y: hit.Y + hit.Height + PlacementMargin, Width: current.Width, Height: current.Height},
			{X: current.X, Y: hit.Y - current.Height - PlacementMargin, Width: current.Width, Height: current.Height},
			{X: hit.X + hit.Width + PlacementMargin, Y: hit.Y + hit.Height + PlacementMargin, Width: current.Width, Height: current.Height},
			{X: hit.X - current.Width - PlacementMargin, Y: hit.Y - current.Height - PlacementMargin, Width: current.Width, Height: current.Height},
		}

		best := current
		bestHits := countOverlaps(current, obstacles)
		for _, cand := range candidates {
			if cand.X < 0 || cand.Y < 0 {
				continue
			}
			n := countOverlaps(cand, obstacles)
			if n == 0 {
				return cand
			}
			if n < bestHits {
				best, bestHits = cand, n
			}
		}
		if best == current {
			// No candidate improved on the current position; further
			// iterations would repeat the same probes.
			break
		}
		current = best
	}

	// Fail open: hand back the caller's proposal untouched.
	return proposed
}

// firstOverlap returns the first obstacle, in input order, whose
// interior intersects r.
func firstOverlap(r Rect, obstacles []Rect) (Rect, bool) {
	for _, o := range obstacles {
		if Overlaps(r, o) {
			return o, true
		}
	}
	return Rect{}, false
}

func countOverlaps(r Rect, obstacles []Rect) int {
	n := 0
	for _, o := range obstacles {
		if Overlaps(r, o) {
			n++
		}
	}
	return n
}
