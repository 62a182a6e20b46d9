// Package layout owns the floor plan: locations and tables, persisted
// in Postgres, with every completed drag/resize gesture run through the
// geometry engine before it is written.
package layout

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"restaurant-manager-go/internal/geometry"
	"restaurant-manager-go/pkg/model"
)

// Sentinel errors matched by the HTTP layer.
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrLocationOverlap  = errors.New("location overlaps another location")
	ErrLocationTooSmall = errors.New("location below minimum size")
	ErrMalformedRect    = geometry.ErrMalformedRect
)

// DefaultLocationSize is used when a create request omits dimensions.
const DefaultLocationSize = 200.0

// LayoutService handles floor-plan operations
type LayoutService struct {
	db *sqlx.DB
}

// NewLayoutService creates a new layout service
func NewLayoutService(db *sqlx.DB) *LayoutService {
	return &LayoutService{db: db}
}

// GetFloorPlan returns the whole editor state: locations, tables and
// the canvas extent for scroll/pan.
func (s *LayoutService) GetFloorPlan() (*model.FloorPlanResponse, error) {
	locations, err := s.ListLocations()
	if err != nil {
		return nil, err
	}

	var tables []model.Table
	err = s.db.Select(&tables, "SELECT * FROM tables ORDER BY id")
	if err != nil {
		return nil, err
	}

	bounds := geometry.CanvasBounds(locationRects(locations, 0))

	return &model.FloorPlanResponse{
		Locations:  locations,
		Tables:     tables,
		Canvas:     model.CanvasExtent(bounds),
		GridSize:   geometry.GridSize,
		TableCount: len(tables),
	}, nil
}

// Canvas returns just the scroll/pan extent, for clients that do not
// need the full floor plan.
func (s *LayoutService) Canvas() (model.CanvasExtent, error) {
	locations, err := s.ListLocations()
	if err != nil {
		return model.CanvasExtent{}, err
	}
	return model.CanvasExtent(geometry.CanvasBounds(locationRects(locations, 0))), nil
}

// ListLocations fetches all locations
func (s *LayoutService) ListLocations() ([]model.Location, error) {
	locations := []model.Location{}
	err := s.db.Select(&locations, "SELECT * FROM locations ORDER BY id")
	return locations, err
}

// CreateLocation places a new location on the canvas. The proposed
// rectangle is snapped to the grid and displaced away from existing
// locations before it is persisted.
func (s *LayoutService) CreateLocation(req model.LocationCreateRequest) (*model.Location, error) {
	rect := geometry.Rect{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}
	if rect.Width == 0 {
		rect.Width = DefaultLocationSize
	}
	if rect.Height == 0 {
		rect.Height = DefaultLocationSize
	}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}

	rect = geometry.SnapRect(rect, geometry.GridSize)
	if rect.Width < geometry.MinRegionSize || rect.Height < geometry.MinRegionSize {
		return nil, ErrLocationTooSmall
	}

	others, err := s.ListLocations()
	if err != nil {
		return nil, err
	}
	rect = geometry.FindNonOverlappingPlacement(rect, locationRects(others, 0), geometry.MaxPlacementAttempts)

	var loc model.Location
	err = s.db.Get(&loc,
		`INSERT INTO locations (name, x, y, width, height, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $6)
         RETURNING *`,
		req.Name, rect.X, rect.Y, rect.Width, rect.Height, time.Now())
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// MoveLocation persists the end of a drag gesture on a location. Size
// is kept; the position is snapped and displaced away from the other
// locations.
func (s *LayoutService) MoveLocation(locationID int, req model.PlacementRequest) (*model.Location, error) {
	loc, err := s.GetLocation(locationID)
	if err != nil {
		return nil, err
	}

	rect := geometry.Rect{X: req.X, Y: req.Y, Width: loc.Width, Height: loc.Height}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}
	rect.X = geometry.SnapToGrid(rect.X, geometry.GridSize)
	rect.Y = geometry.SnapToGrid(rect.Y, geometry.GridSize)

	others, err := s.ListLocations()
	if err != nil {
		return nil, err
	}
	rect = geometry.FindNonOverlappingPlacement(rect, locationRects(others, locationID), geometry.MaxPlacementAttempts)

	return s.updateLocationRect(locationID, rect)
}

// ResizeLocation persists the end of a resize gesture. Unlike a move,
// a resize that would overlap a neighbor is rejected rather than
// displaced: growing a room should not teleport it.
func (s *LayoutService) ResizeLocation(locationID int, req model.PlacementRequest) (*model.Location, error) {
	loc, err := s.GetLocation(locationID)
	if err != nil {
		return nil, err
	}

	rect := geometry.Rect{X: loc.X, Y: loc.Y, Width: req.Width, Height: req.Height}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}
	rect = geometry.SnapRect(rect, geometry.GridSize)
	if rect.Width < geometry.MinRegionSize || rect.Height < geometry.MinRegionSize {
		return nil, ErrLocationTooSmall
	}

	others, err := s.ListLocations()
	if err != nil {
		return nil, err
	}
	for _, o := range locationRects(others, locationID) {
		if geometry.Overlaps(rect, o) {
			return nil, ErrLocationOverlap
		}
	}

	updated, err := s.updateLocationRect(locationID, rect)
	if err != nil {
		return nil, err
	}

	// A shrink can leave tables outside the new interior; pull them back
	// in the same way a table move would.
	tables, err := s.ListTables(&locationID)
	if err != nil {
		return nil, err
	}
	owner := sql.NullInt64{Int64: int64(locationID), Valid: true}
	for id, moved := range reclampTables(tables, geometry.Size{Width: rect.Width, Height: rect.Height}) {
		if _, err := s.updateTablePosition(id, owner, moved); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// DeleteLocation removes a location. Its tables are kept and become
// unassigned floor tables.
func (s *LayoutService) DeleteLocation(locationID int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("UPDATE tables SET location_id = NULL, updated_at = $1 WHERE location_id = $2",
		time.Now(), locationID)
	if err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM locations WHERE id = $1", locationID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrLocationNotFound
	}

	return tx.Commit()
}

// GetLocation fetches a single location
func (s *LayoutService) GetLocation(locationID int) (*model.Location, error) {
	var loc model.Location
	err := s.db.Get(&loc, "SELECT * FROM locations WHERE id = $1", locationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (s *LayoutService) updateLocationRect(locationID int, rect geometry.Rect) (*model.Location, error) {
	var loc model.Location
	err := s.db.Get(&loc,
		`UPDATE locations SET x = $1, y = $2, width = $3, height = $4, updated_at = $5
         WHERE id = $6
         RETURNING *`,
		rect.X, rect.Y, rect.Width, rect.Height, time.Now(), locationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// CreateTable adds a table, optionally inside a location. Assigned
// tables use coordinates relative to the location origin.
func (s *LayoutService) CreateTable(req model.TableCreateRequest) (*model.Table, error) {
	rect := geometry.Rect{
		X:      req.X,
		Y:      req.Y,
		Width:  geometry.DefaultTableSize,
		Height: geometry.DefaultTableSize,
	}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}

	var locationID sql.NullInt64
	if req.LocationID != nil {
		loc, err := s.GetLocation(*req.LocationID)
		if err != nil {
			return nil, err
		}
		locationID = sql.NullInt64{Int64: int64(loc.ID), Valid: true}
		rect, err = s.placeTableInLocation(rect, loc, 0)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		rect, err = s.placeTableUnassigned(rect, 0)
		if err != nil {
			return nil, err
		}
	}

	seats := req.Seats
	if seats == 0 {
		seats = 4
	}

	var table model.Table
	err := s.db.Get(&table,
		`INSERT INTO tables (name, location_id, x, y, width, height, seats, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
         RETURNING *`,
		req.Name, locationID, rect.X, rect.Y, rect.Width, rect.Height, seats,
		model.TableStatusFree, time.Now())
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// MoveTable persists the end of a drag gesture on a table within its
// current location (or the free floor space when unassigned).
func (s *LayoutService) MoveTable(tableID int, req model.PlacementRequest) (*model.Table, error) {
	table, err := s.GetTable(tableID)
	if err != nil {
		return nil, err
	}

	rect := geometry.Rect{X: req.X, Y: req.Y, Width: table.Width, Height: table.Height}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}

	if table.LocationID.Valid {
		loc, err := s.GetLocation(int(table.LocationID.Int64))
		if err != nil {
			return nil, err
		}
		rect, err = s.placeTableInLocation(rect, loc, tableID)
		if err != nil {
			return nil, err
		}
	} else {
		rect, err = s.placeTableUnassigned(rect, tableID)
		if err != nil {
			return nil, err
		}
	}

	return s.updateTablePosition(tableID, table.LocationID, rect)
}

// AssignTable moves a table into a location, or out of all locations
// when the request carries a null location_id.
func (s *LayoutService) AssignTable(tableID int, req model.TableAssignRequest) (*model.Table, error) {
	table, err := s.GetTable(tableID)
	if err != nil {
		return nil, err
	}

	rect := geometry.Rect{X: req.X, Y: req.Y, Width: table.Width, Height: table.Height}
	if err := geometry.Validate(rect); err != nil {
		return nil, err
	}

	var locationID sql.NullInt64
	if req.LocationID != nil {
		loc, err := s.GetLocation(*req.LocationID)
		if err != nil {
			return nil, err
		}
		locationID = sql.NullInt64{Int64: int64(loc.ID), Valid: true}
		rect, err = s.placeTableInLocation(rect, loc, tableID)
		if err != nil {
			return nil, err
		}
	} else {
		rect, err = s.placeTableUnassigned(rect, tableID)
		if err != nil {
			return nil, err
		}
	}

	return s.updateTablePosition(tableID, locationID, rect)
}

// DeleteTable removes a table
func (s *LayoutService) DeleteTable(tableID int) error {
	res, err := s.db.Exec("DELETE FROM tables WHERE id = $1", tableID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrTableNotFound
	}
	return nil
}

// GetTable fetches a single table
func (s *LayoutService) GetTable(tableID int) (*model.Table, error) {
	var table model.Table
	err := s.db.Get(&table, "SELECT * FROM tables WHERE id = $1", tableID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// ListTables fetches tables of one location, or the unassigned ones
// when locationID is nil.
func (s *LayoutService) ListTables(locationID *int) ([]model.Table, error) {
	tables := []model.Table{}
	var err error
	if locationID != nil {
		err = s.db.Select(&tables, "SELECT * FROM tables WHERE location_id = $1 ORDER BY id", *locationID)
	} else {
		err = s.db.Select(&tables, "SELECT * FROM tables WHERE location_id IS NULL ORDER BY id")
	}
	return tables, err
}

// SetTableStatus updates the free/occupied/reserved marker shown on
// the floor map.
func (s *LayoutService) SetTableStatus(tableID int, status string) error {
	switch status {
	case model.TableStatusFree, model.TableStatusOccupied, model.TableStatusReserved:
	default:
		return fmt.Errorf("invalid table status %q", status)
	}
	res, err := s.db.Exec("UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), tableID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrTableNotFound
	}
	return nil
}

// placeTableInLocation runs the placement pipeline for a table inside
// a location: snap, clamp into the location interior, then displace
// away from sibling tables. excludeTableID skips the table itself when
// it is being moved.
func (s *LayoutService) placeTableInLocation(rect geometry.Rect, loc *model.Location, excludeTableID int) (geometry.Rect, error) {
	rect.X = geometry.SnapToGrid(rect.X, geometry.GridSize)
	rect.Y = geometry.SnapToGrid(rect.Y, geometry.GridSize)
	rect = geometry.ClampToBounds(rect, geometry.Size{Width: loc.Width, Height: loc.Height})

	siblings, err := s.ListTables(&loc.ID)
	if err != nil {
		return rect, err
	}
	return geometry.FindNonOverlappingPlacement(rect, tableRects(siblings, excludeTableID), geometry.MaxPlacementAttempts), nil
}

// placeTableUnassigned places a table in the free coordinate space,
// avoiding the other unassigned tables. No bounds apply there.
func (s *LayoutService) placeTableUnassigned(rect geometry.Rect, excludeTableID int) (geometry.Rect, error) {
	rect.X = geometry.SnapToGrid(rect.X, geometry.GridSize)
	rect.Y = geometry.SnapToGrid(rect.Y, geometry.GridSize)
	if rect.X < 0 {
		rect.X = 0
	}
	if rect.Y < 0 {
		rect.Y = 0
	}

	floaters, err := s.ListTables(nil)
	if err != nil {
		return rect, err
	}
	return geometry.FindNonOverlappingPlacement(rect, tableRects(floaters, excludeTableID), geometry.MaxPlacementAttempts), nil
}

func (s *LayoutService) updateTablePosition(tableID int, locationID sql.NullInt64, rect geometry.Rect) (*model.Table, error) {
	var table model.Table
	err := s.db.Get(&table,
		`UPDATE tables SET location_id = $1, x = $2, y = $3, updated_at = $4
         WHERE id = $5
         RETURNING *`,
		locationID, rect.X, rect.Y, time.Now(), tableID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// locationRects converts locations to obstacle rectangles, skipping
// excludeID (the location being moved).
func locationRects(locations []model.Location, excludeID int) []geometry.Rect {
	rects := make([]geometry.Rect, 0, len(locations))
	for _, l := range locations {
		if l.ID == excludeID {
			continue
		}
		rects = append(rects, geometry.Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height})
	}
	return rects
}

// reclampTables computes new rectangles for tables that no longer fit
// inside the given interior. Each escaped table is clamped back in and
// then displaced away from its siblings; tables that still fit are left
// alone. Returns table ID to new rectangle.
func reclampTables(tables []model.Table, bounds geometry.Size) map[int]geometry.Rect {
	rects := make([]geometry.Rect, len(tables))
	for i, t := range tables {
		rects[i] = geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
	}

	moves := make(map[int]geometry.Rect)
	for i, t := range tables {
		clamped := geometry.ClampToBounds(rects[i], bounds)
		if clamped == rects[i] {
			continue
		}

		obstacles := make([]geometry.Rect, 0, len(rects)-1)
		for j, r := range rects {
			if j != i {
				obstacles = append(obstacles, r)
			}
		}
		placed := geometry.FindNonOverlappingPlacement(clamped, obstacles, geometry.MaxPlacementAttempts)
		rects[i] = placed
		moves[t.ID] = placed
	}
	return moves
}

// tableRects converts tables to obstacle rectangles, skipping excludeID.
func tableRects(tables []model.Table, excludeID int) []geometry.Rect {
	rects := make([]geometry.Rect, 0, len(tables))
	for _, t := range tables {
		if t.ID == excludeID {
			continue
		}
		rects = append(rects, geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height})
	}
	return rects
}
