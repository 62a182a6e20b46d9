package handler

import (
	"net/http"
	"strconv"
	"time"

	"restaurant-manager-go/internal/analytics"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles reporting HTTP requests
type AnalyticsHandler struct {
	analyticsService *analytics.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// parseRange reads from/to query params (YYYY-MM-DD), defaulting to
// the last 30 days. The to date is exclusive end-of-day.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// DailyRevenue handles GET /api/admin/analytics/revenue
func (h *AnalyticsHandler) DailyRevenue(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	rows, err := h.analyticsService.DailyRevenue(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": rows})
}

// TopItems handles GET /api/admin/analytics/top-items
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.analyticsService.TopItems(from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// TableActivity handles GET /api/admin/analytics/tables
func (h *AnalyticsHandler) TableActivity(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	rows, err := h.analyticsService.TableActivity(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch table activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": rows})
}
