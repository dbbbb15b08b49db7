package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/creamroast/pos-api/internal/store"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	Store     *store.Store
	Log       *logrus.Logger
	JWTSecret []byte
}

// writeStoreError maps the store's error taxonomy onto HTTP statuses.
// Validation and not-found errors carry their message to the caller;
// anything else is logged and reported generically.
func (h *Handlers) writeStoreError(c *gin.Context, err error) {
	switch {
	case store.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrSaleNumberExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Log.WithError(err).WithField("path", c.FullPath()).Error("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// cashierID returns the authenticated user id as a nullable reference,
// nil when the route ran without auth context.
func cashierID(c *gin.Context) *string {
	id := c.GetString("userID")
	if id == "" {
		return nil
	}
	return &id
}
