package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creamroast/pos-api/internal/models"
	"github.com/creamroast/pos-api/internal/store"
)

// SaleItemInput is one line of a sale request. Prices are intentionally
// absent: the server reads them from the catalog at sale time.
type SaleItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleInput is the JSON body for POST /api/sales.
type CreateSaleInput struct {
	Items            []SaleItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod    string          `json:"paymentMethod" binding:"required"`
	Discount         float64         `json:"discount" binding:"gte=0"`
	Tax              float64         `json:"tax" binding:"gte=0"`
	PaymentReference *string         `json:"paymentReference"`
}

// CreateSale is the handler for POST /api/sales.
func (h *Handlers) CreateSale(c *gin.Context) {
	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]store.SaleLine, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, store.SaleLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	sale, err := h.Store.CreateSale(c, store.CreateSaleParams{
		Items:            lines,
		PaymentMethod:    models.PaymentMethod(input.PaymentMethod),
		Discount:         input.Discount,
		Tax:              input.Tax,
		PaymentReference: input.PaymentReference,
		CashierID:        cashierID(c),
	})
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"saleId":     sale.ID,
		"saleNumber": sale.SaleNumber,
		"total":      sale.Total,
		"message":    "Venta registrada exitosamente",
	})
}

// GetSales is the handler for GET /api/sales. Query parameters:
// startDate / endDate (YYYY-MM-DD, inclusive), paymentMethod, status,
// cashierId.
func (h *Handlers) GetSales(c *gin.Context) {
	filter, err := saleFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := h.Store.ListSales(c, filter)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// GetSale is the handler for GET /api/sales/:saleId.
func (h *Handlers) GetSale(c *gin.Context) {
	sale, err := h.Store.GetSale(c, c.Param("saleId"))
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale, "items": sale.Items})
}

// CancelSaleInput is the optional DELETE body carrying the reason.
type CancelSaleInput struct {
	Reason string `json:"razon"`
}

// CancelSale is the handler for DELETE /api/sales/:saleId.
func (h *Handlers) CancelSale(c *gin.Context) {
	var input CancelSaleInput
	// The body is optional; a missing or empty one means default reason.
	_ = c.ShouldBindJSON(&input)

	if err := h.Store.CancelSale(c, c.Param("saleId"), input.Reason); err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venta cancelada correctamente"})
}

// GetSalesReport is the handler for GET /api/reports/sales (admin).
func (h *Handlers) GetSalesReport(c *gin.Context) {
	filter, err := saleFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Store.BuildReport(c, filter)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func saleFilterFromQuery(c *gin.Context) (store.SaleFilter, error) {
	filter := store.SaleFilter{
		PaymentMethod: models.PaymentMethod(c.Query("paymentMethod")),
		Status:        models.SaleStatus(c.Query("status")),
		CashierID:     c.Query("cashierId"),
	}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return store.SaleFilter{}, err
		}
		filter.Start = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return store.SaleFilter{}, err
		}
		// Inclusive calendar day: everything before the next midnight.
		next := end.AddDate(0, 0, 1)
		filter.End = &next
	}
	return filter, nil
}
