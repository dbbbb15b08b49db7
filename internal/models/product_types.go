package models

import "time"

// ProductStatus is the soft-delete state stored in products.estado.
// Rows are never removed; deactivation flips the status so historical
// sale items keep a valid product reference.
type ProductStatus string

const (
	ProductActive   ProductStatus = "activo"
	ProductInactive ProductStatus = "inactivo"
)

// Product is the model for the 'products' table.
// Price and CategoryName come from joins against product_prices and
// product_categories; the products row itself only stores price_id.
type Product struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	ImageURL    *string `json:"imageUrl,omitempty" db:"image_url"`

	CategoryID   *string `json:"categoryId,omitempty" db:"category_id"`
	CategoryName string  `json:"categoryName,omitempty" db:"-"`

	PriceID *string `json:"-" db:"price_id"`
	Price   float64 `json:"price" db:"-"`

	// Stock bookkeeping exists on the row but is not enforced against
	// sales. See Store.OnSaleCompleted for the extension seam.
	TrackStock   bool `json:"trackStock" db:"track_stock"`
	CurrentStock int  `json:"currentStock" db:"current_stock"`
	MinStock     int  `json:"minStock" db:"min_stock"`
	MaxStock     int  `json:"maxStock" db:"max_stock"`

	Status    ProductStatus `json:"status" db:"estado"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}
