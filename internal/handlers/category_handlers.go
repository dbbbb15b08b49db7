package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creamroast/pos-api/internal/models"
)

// GetCategories is the handler for GET /api/categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories(c)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory is the handler for POST /api/categories (admin only).
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Store.CreateCategory(c, input)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Categoría creada", "category": category})
}
