// Package geometry implements the floor-plan layout engine: pure
// rectangle math used to place locations and tables on the editor canvas
// without overlap. It performs no I/O and holds no state; the layout
// service calls into it once per completed drag or resize gesture.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Layout constants shared with the front-end editor.
const (
	// GridSize is the snap grid in canvas units.
	GridSize = 20.0

	// PlacementMargin is the gap left between a displaced rectangle and
	// the obstacle it was pushed away from.
	PlacementMargin = 10.0

	// CanvasMargin is added on every side of the enclosing box returned
	// by CanvasBounds.
	CanvasMargin = 50.0

	// MaxPlacementAttempts bounds the displacement search retry loop.
	MaxPlacementAttempts = 50

	// DefaultCanvasWidth and DefaultCanvasHeight are the canvas extent
	// reported when no locations exist yet.
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0

	// MinRegionSize is the smallest allowed location width or height.
	MinRegionSize = 100.0

	// DefaultTableSize is the width and height of a newly created table.
	DefaultTableSize = 50.0
)

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is a width/height pair, used as clamp bounds.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the enclosing box of a set of rectangles.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// ErrMalformedRect is returned by Validate for rectangles with
// non-finite coordinates or negative dimensions.
var ErrMalformedRect = errors.New("malformed rectangle")

// Validate checks the engine's precondition on rectangle inputs: all
// fields finite, width and height non-negative. The pure operations
// below do not validate defensively; callers that accept rectangles
// from the outside world run Validate first.
func Validate(r Rect) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrMalformedRect)
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: negative dimensions", ErrMalformedRect)
	}
	return nil
}

// Overlaps reports whether the open interiors of a and b intersect.
// Rectangles that merely touch at an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height &&
		b.Y < a.Y+a.Height
}

// SnapToGrid rounds v to the nearest multiple of grid, halves rounding
// away from zero. A non-positive grid returns v unchanged.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapRect snaps a rectangle's position and dimensions to the grid.
func SnapRect(r Rect, grid float64) Rect {
	return Rect{
		X:      SnapToGrid(r.X, grid),
		Y:      SnapToGrid(r.Y, grid),
		Width:  SnapToGrid(r.Width, grid),
		Height: SnapToGrid(r.Height, grid),
	}
}

// ClampToBounds moves r so it lies within [0, bounds.Width] x
// [0, bounds.Height], preserving its size. When bounds are smaller than
// the rectangle the position clamps to 0 rather than going negative.
func ClampToBounds(r Rect, bounds Size) Rect {
	maxX := bounds.Width - r.Width
	if maxX < 0 {
		maxX = 0
	}
	maxY := bounds.Height - r.Height
	if maxY < 0 {
		maxY = 0
	}
	r.X = clamp(r.X, 0, maxX)
	r.Y = clamp(r.Y, 0, maxY)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CanvasBounds returns the smallest box enclosing all regions, expanded
// by CanvasMargin on every side. With no regions it reports the default
// canvas at the origin.
func CanvasBounds(regions []Rect) Bounds {
	if len(regions) == 0 {
		return Bounds{MinX: 0, MinY: 0, MaxX: DefaultCanvasWidth, MaxY: DefaultCanvasHeight}
	}

	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	for _, r := range regions {
		b.MinX = math.Min(b.MinX, r.X)
		b.MinY = math.Min(b.MinY, r.Y)
		b.MaxX = math.Max(b.MaxX, r.X+r.Width)
		b.MaxY = math.Max(b.MaxY, r.Y+r.Height)
	}

	b.MinX -= CanvasMargin
	b.MinY -= CanvasMargin
	b.MaxX += CanvasMargin
	b.MaxY += CanvasMargin
	return b
}
