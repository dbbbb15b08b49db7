package models

import "time"

// Category defines the struct for the 'product_categories' table
type Category struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	Color        *string   `json:"color,omitempty" db:"color"`
	Icon         *string   `json:"icon,omitempty" db:"icon"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CreateCategoryInput is the JSON body accepted by POST /api/categories
type CreateCategoryInput struct {
	Name         string  `json:"name" binding:"required"`
	DisplayOrder int     `json:"displayOrder" binding:"gte=0"`
	Color        *string `json:"color"`
	Icon         *string `json:"icon"`
}
