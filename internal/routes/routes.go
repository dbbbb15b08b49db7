package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/creamroast/pos-api/internal/handlers"
	"github.com/creamroast/pos-api/internal/middleware"
)

// SetupRouter wires the HTTP surface. The SPA origin is the only one
// allowed to send credentials.
func SetupRouter(h *handlers.Handlers, allowOrigin string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/auth/login", h.Login)

		// --- Protected Routes (Login Required) ---
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(h.JWTSecret))
		{
			protected.GET("/products", h.GetProducts)
			protected.GET("/categories", h.GetCategories)

			protected.POST("/sales", h.CreateSale)
			protected.GET("/sales", h.GetSales)
			protected.GET("/sales/:saleId", h.GetSale)
			protected.DELETE("/sales/:saleId", h.CancelSale)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/")
		admin.Use(middleware.AuthMiddleware(h.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/auth/register", h.Register)

			admin.GET("/products/all", h.GetAllProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)

			admin.POST("/categories", h.CreateCategory)

			admin.GET("/reports/sales", h.GetSalesReport)
		}
	}

	return router
}
