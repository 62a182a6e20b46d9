package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"restaurant-manager-go/internal/menu"
	"restaurant-manager-go/pkg/model"

	"github.com/gin-gonic/gin"
)

// MenuHandler handles menu HTTP requests
type MenuHandler struct {
	menuService *menu.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *menu.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// GetPublicMenu handles GET /api/menu, the customer-facing menu
func (h *MenuHandler) GetPublicMenu(c *gin.Context) {
	resp, err := h.menuService.GetPublicMenu(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching public menu: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRelatedItems handles GET /api/menu/items/:id/related
func (h *MenuHandler) GetRelatedItems(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	resp, err := h.menuService.RelatedItems(itemID, limit)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		log.Printf("Error computing related items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related items"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/menu/categories
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req model.MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.menuService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles PUT /api/menu/categories/:id
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req model.MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.menuService.UpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		if errors.Is(err, menu.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/menu/categories/:id
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		if errors.Is(err, menu.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err.Error() == "category still has items" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ListItems handles GET /api/menu/categories/:id/items
func (h *MenuHandler) ListItems(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	items, err := h.menuService.ListItems(categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /api/menu/items
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req model.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, menu.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/menu/items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req model.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menuService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/menu/items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), itemID); err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// CreateOption handles POST /api/menu/items/:id/options
func (h *MenuHandler) CreateOption(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req model.MenuOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opt, err := h.menuService.CreateOption(c.Request.Context(), itemID, req)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create option"})
		return
	}
	c.JSON(http.StatusCreated, opt)
}

// DeleteOption handles DELETE /api/menu/options/:id
func (h *MenuHandler) DeleteOption(c *gin.Context) {
	optionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid option ID"})
		return
	}

	if err := h.menuService.DeleteOption(c.Request.Context(), optionID); err != nil {
		if err.Error() == "option not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Option not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete option"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Option deleted"})
}
