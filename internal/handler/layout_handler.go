package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"restaurant-manager-go/internal/layout"
	"restaurant-manager-go/pkg/model"

	"github.com/gin-gonic/gin"
)

// LayoutHandler handles floor-plan HTTP requests
type LayoutHandler struct {
	layoutService *layout.LayoutService
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(layoutService *layout.LayoutService) *LayoutHandler {
	return &LayoutHandler{
		layoutService: layoutService,
	}
}

// GetFloorPlan handles GET /api/layout
func (h *LayoutHandler) GetFloorPlan(c *gin.Context) {
	plan, err := h.layoutService.GetFloorPlan()
	if err != nil {
		log.Printf("Error fetching floor plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch floor plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetCanvas handles GET /api/layout/canvas
func (h *LayoutHandler) GetCanvas(c *gin.Context) {
	canvas, err := h.layoutService.Canvas()
	if err != nil {
		log.Printf("Error computing canvas extent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute canvas extent"})
		return
	}
	c.JSON(http.StatusOK, canvas)
}

// ListLocationTables handles GET /api/layout/locations/:id/tables
func (h *LayoutHandler) ListLocationTables(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if _, err := h.layoutService.GetLocation(locationID); err != nil {
		h.writeLayoutError(c, err, "Failed to fetch location")
		return
	}

	tables, err := h.layoutService.ListTables(&locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tables"})
		return
	}
	c.JSON(http.StatusOK, tables)
}

// CreateLocation handles POST /api/layout/locations
func (h *LayoutHandler) CreateLocation(c *gin.Context) {
	var req model.LocationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.layoutService.CreateLocation(req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to create location")
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// MoveLocation handles PUT /api/layout/locations/:id/position
func (h *LayoutHandler) MoveLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req model.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.layoutService.MoveLocation(locationID, req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to move location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// ResizeLocation handles PUT /api/layout/locations/:id/size
func (h *LayoutHandler) ResizeLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req model.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.layoutService.ResizeLocation(locationID, req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to resize location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// DeleteLocation handles DELETE /api/layout/locations/:id
func (h *LayoutHandler) DeleteLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.layoutService.DeleteLocation(locationID); err != nil {
		h.writeLayoutError(c, err, "Failed to delete location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}

// CreateTable handles POST /api/layout/tables
func (h *LayoutHandler) CreateTable(c *gin.Context) {
	var req model.TableCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.layoutService.CreateTable(req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to create table")
		return
	}
	c.JSON(http.StatusCreated, table)
}

// MoveTable handles PUT /api/layout/tables/:id/position
func (h *LayoutHandler) MoveTable(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var req model.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.layoutService.MoveTable(tableID, req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to move table")
		return
	}
	c.JSON(http.StatusOK, table)
}

// AssignTable handles PUT /api/layout/tables/:id/location
func (h *LayoutHandler) AssignTable(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var req model.TableAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.layoutService.AssignTable(tableID, req)
	if err != nil {
		h.writeLayoutError(c, err, "Failed to assign table")
		return
	}
	c.JSON(http.StatusOK, table)
}

// SetTableStatus handles PUT /api/layout/tables/:id/status
func (h *LayoutHandler) SetTableStatus(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.layoutService.SetTableStatus(tableID, req.Status); err != nil {
		if errors.Is(err, layout.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table status updated"})
}

// DeleteTable handles DELETE /api/layout/tables/:id
func (h *LayoutHandler) DeleteTable(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	if err := h.layoutService.DeleteTable(tableID); err != nil {
		h.writeLayoutError(c, err, "Failed to delete table")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// writeLayoutError maps layout service errors to HTTP responses
func (h *LayoutHandler) writeLayoutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, layout.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
	case errors.Is(err, layout.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	case errors.Is(err, layout.ErrLocationOverlap):
		c.JSON(http.StatusConflict, gin.H{"error": "Location would overlap another location"})
	case errors.Is(err, layout.ErrLocationTooSmall):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location below minimum size"})
	case errors.Is(err, layout.ErrMalformedRect):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed rectangle"})
	default:
		log.Printf("Layout error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
