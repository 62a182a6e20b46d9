package model

import (
	"database/sql"
	"time"
)

// Table statuses as shown on the floor map.
const (
	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
	TableStatusReserved = "reserved"
)

// Location represents a rectangular floor-plan area that contains tables
type Location struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	X         float64   `json:"x" db:"x"`
	Y         float64   `json:"y" db:"y"`
	Width     float64   `json:"width" db:"width"`
	Height    float64   `json:"height" db:"height"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Table represents a table on the canvas, optionally owned by a
// location. Coordinates of an assigned table are relative to the owning
// location's origin; unassigned tables float in a free coordinate space.
type Table struct {
	ID         int           `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	LocationID sql.NullInt64 `json:"location_id" db:"location_id"`
	X          float64       `json:"x" db:"x"`
	Y          float64       `json:"y" db:"y"`
	Width      float64       `json:"width" db:"width"`
	Height     float64       `json:"height" db:"height"`
	Seats      int           `json:"seats" db:"seats"`
	Status     string        `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// LocationCreateRequest represents the request to add a location
type LocationCreateRequest struct {
	Name   string  `json:"name" binding:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacementRequest carries the proposed rectangle of a completed drag
// or resize gesture. The server answers with the persisted rectangle,
// which may differ after snapping, clamping and overlap avoidance.
type PlacementRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableCreateRequest represents the request to add a table
type TableCreateRequest struct {
	Name       string  `json:"name" binding:"required"`
	LocationID *int    `json:"location_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Seats      int     `json:"seats"`
}

// TableAssignRequest moves a table into a location (or out of all
// locations when LocationID is null).
type TableAssignRequest struct {
	LocationID *int    `json:"location_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// FloorPlanResponse is the full editor state for the front end
type FloorPlanResponse struct {
	Locations  []Location   `json:"locations"`
	Tables     []Table      `json:"tables"`
	Canvas     CanvasExtent `json:"canvas"`
	GridSize   float64      `json:"grid_size"`
	TableCount int          `json:"table_count"`
}

// CanvasExtent is the scroll/pan extent of the editor canvas
type CanvasExtent struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}
