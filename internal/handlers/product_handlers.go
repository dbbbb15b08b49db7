package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creamroast/pos-api/internal/store"
)

// CreateProductInput is the JSON body for POST /api/products. A caller
// may reference an existing category by id or just name one; a bare
// name is resolved or created on the fly.
type CreateProductInput struct {
	Name         string  `json:"name" binding:"required"`
	CategoryID   *string `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"imageUrl"`
	TrackStock   bool    `json:"trackStock"`
	CurrentStock int     `json:"currentStock" binding:"gte=0"`
	MinStock     int     `json:"minStock" binding:"gte=0"`
	MaxStock     int     `json:"maxStock" binding:"gte=0"`
}

// GetProducts is the handler for GET /api/products (register catalog).
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Store.ListActiveProducts(c)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetAllProducts is the handler for GET /api/products/all (admin
// management view, includes deactivated rows).
func (h *Handlers) GetAllProducts(c *gin.Context) {
	products, err := h.Store.ListAllProducts(c)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct is the handler for POST /api/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.CreateProduct(c, store.CreateProductParams{
		Name:         input.Name,
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		Price:        input.Price,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		TrackStock:   input.TrackStock,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		MaxStock:     input.MaxStock,
	})
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Producto creado exitosamente", "product": product})
}

// UpdateProductInput carries the partial update for PUT
// /api/products/:id; only non-nil fields are applied.
type UpdateProductInput struct {
	Name         *string  `json:"name"`
	CategoryID   *string  `json:"categoryId"`
	CategoryName string   `json:"categoryName"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
	TrackStock   *bool    `json:"trackStock"`
	CurrentStock *int     `json:"currentStock" binding:"omitempty,gte=0"`
	MinStock     *int     `json:"minStock" binding:"omitempty,gte=0"`
	MaxStock     *int     `json:"maxStock" binding:"omitempty,gte=0"`
}

// UpdateProduct is the handler for PUT /api/products/:id.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.UpdateProduct(c, c.Param("id"), store.UpdateProductParams{
		Name:         input.Name,
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		Price:        input.Price,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		TrackStock:   input.TrackStock,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		MaxStock:     input.MaxStock,
	})
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto actualizado exitosamente", "product": product})
}

// DeleteProduct is the handler for DELETE /api/products/:id. The row is
// kept and flagged inactive so historical sale items stay resolvable.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.Store.DeactivateProduct(c, c.Param("id")); err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado exitosamente"})
}
