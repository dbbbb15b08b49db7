package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/creamroast/pos-api/internal/models"
)

const productSelect = `
	SELECT
		p.id, p.name, p.description, p.image_url, p.category_id, c.name,
		pp.price, p.track_stock, p.current_stock, p.min_stock, p.max_stock,
		p.estado, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN product_categories c ON p.category_id = c.id
	LEFT JOIN product_prices pp ON p.price_id = pp.id`

func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	var categoryName sql.NullString
	var price sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.CategoryID, &categoryName,
		&price, &p.TrackStock, &p.CurrentStock, &p.MinStock, &p.MaxStock,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}
	if categoryName.Valid {
		p.CategoryName = categoryName.String
	}
	if price.Valid {
		p.Price = price.Float64
	}
	return p, nil
}

// ListActiveProducts returns the catalog as the register browses it:
// active products with category name and current price, ordered by
// category display order, then product name.
func (s *Store) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	query := productSelect + `
	WHERE p.estado = ?
	ORDER BY c.display_order ASC, p.name ASC`

	return s.queryProducts(ctx, query, models.ProductActive)
}

// ListAllProducts returns every product, active or not, newest first.
// This is the admin management view.
func (s *Store) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	query := productSelect + `
	ORDER BY p.created_at DESC`

	return s.queryProducts(ctx, query)
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct fetches a single product by id, joined with its category
// and current price.
func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	row := s.db.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CreateProductParams is the data required to create a product. Exactly
// one of CategoryID / CategoryName must be supplied; a name with no id
// resolves or creates the category on the fly.
type CreateProductParams struct {
	Name         string
	CategoryID   *string
	CategoryName string
	Price        float64
	Description  *string
	ImageURL     *string
	TrackStock   bool
	CurrentStock int
	MinStock     int
	MaxStock     int
}

// CreateProduct inserts a product with an initial price-history row and
// active status.
func (s *Store) CreateProduct(ctx context.Context, params CreateProductParams) (models.Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return models.Product{}, validationf("product name is required")
	}
	if params.Price <= 0 {
		return models.Product{}, validationf("product price must be greater than zero")
	}
	if params.CategoryID == nil && strings.TrimSpace(params.CategoryName) == "" {
		return models.Product{}, validationf("categoryId or categoryName is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	categoryID, err := s.resolveCategory(ctx, tx, params.CategoryID, params.CategoryName)
	if err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	productID := uuid.NewString()
	priceID := uuid.NewString()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO product_prices (id, product_id, price, valid_from, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		priceID, productID, params.Price, now, now)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert price: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products
			(id, name, category_id, price_id, description, image_url,
			track_stock, current_stock, min_stock, max_stock,
			estado, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		productID, params.Name, categoryID, priceID, params.Description, params.ImageURL,
		params.TrackStock, params.CurrentStock, params.MinStock, params.MaxStock,
		models.ProductActive, now, now)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("commit: %w", err)
	}

	return s.GetProduct(ctx, productID)
}

// UpdateProductParams carries partial updates; nil fields are left
// untouched. A new price inserts a fresh price-history row.
type UpdateProductParams struct {
	Name         *string
	CategoryID   *string
	CategoryName string
	Price        *float64
	Description  *string
	ImageURL     *string
	TrackStock   *bool
	CurrentStock *int
	MinStock     *int
	MaxStock     *int
}

// UpdateProduct merges the supplied fields into an existing product and
// refreshes updated_at.
func (s *Store) UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (models.Product, error) {
	if params.Price != nil && *params.Price <= 0 {
		return models.Product{}, validationf("product price must be greater than zero")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("check product: %w", err)
	}

	now := time.Now().UTC()
	querySet := "updated_at = ?"
	queryArgs := []interface{}{now}

	if params.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *params.Name)
	}
	if params.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *params.Description)
	}
	if params.ImageURL != nil {
		querySet += ", image_url = ?"
		queryArgs = append(queryArgs, *params.ImageURL)
	}
	if params.TrackStock != nil {
		querySet += ", track_stock = ?"
		queryArgs = append(queryArgs, *params.TrackStock)
	}
	if params.CurrentStock != nil {
		querySet += ", current_stock = ?"
		queryArgs = append(queryArgs, *params.CurrentStock)
	}
	if params.MinStock != nil {
		querySet += ", min_stock = ?"
		queryArgs = append(queryArgs, *params.MinStock)
	}
	if params.MaxStock != nil {
		querySet += ", max_stock = ?"
		queryArgs = append(queryArgs, *params.MaxStock)
	}

	if params.CategoryID != nil || strings.TrimSpace(params.CategoryName) != "" {
		categoryID, err := s.resolveCategory(ctx, tx, params.CategoryID, params.CategoryName)
		if err != nil {
			return models.Product{}, err
		}
		querySet += ", category_id = ?"
		queryArgs = append(queryArgs, categoryID)
	}

	if params.Price != nil {
		priceID := uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_prices (id, product_id, price, valid_from, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			priceID, id, *params.Price, now, now)
		if err != nil {
			return models.Product{}, fmt.Errorf("insert price: %w", err)
		}
		querySet += ", price_id = ?"
		queryArgs = append(queryArgs, priceID)
	}

	queryArgs = append(queryArgs, id)
	_, err = tx.ExecContext(ctx, fmt.Sprintf("UPDATE products SET %s WHERE id = ?", querySet), queryArgs...)
	if err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("commit: %w", err)
	}

	return s.GetProduct(ctx, id)
}

// DeactivateProduct soft-deletes a product. Deactivating an already
// inactive product is not an error.
func (s *Store) DeactivateProduct(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE products SET estado = ?, updated_at = ? WHERE id = ?",
		models.ProductInactive, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// ListCategories returns all categories ordered for display.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, display_order, color, icon, is_active, created_at
		FROM product_categories
		ORDER BY display_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		var catSlug sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &catSlug, &cat.DisplayOrder,
			&cat.Color, &cat.Icon, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.Slug = catSlug.String
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Category{}, validationf("category name is required")
	}

	cat := models.Category{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Slug:         slug.Make(input.Name),
		DisplayOrder: input.DisplayOrder,
		Color:        input.Color,
		Icon:         input.Icon,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO product_categories (id, name, slug, display_order, color, icon, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.DisplayOrder, cat.Color, cat.Icon, cat.IsActive, cat.CreatedAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return cat, nil
}

// resolveCategory returns the category id referenced by a product write.
// An explicit id must exist. A bare name is matched exactly
// (case-sensitive) against existing categories and created on a miss.
// Name variants like "Bebidas" vs "bebidas" therefore produce duplicate
// categories; known limitation.
func (s *Store) resolveCategory(ctx context.Context, tx *sql.Tx, categoryID *string, categoryName string) (string, error) {
	if categoryID != nil {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM product_categories WHERE id = ?", *categoryID).Scan(&exists)
		if err == sql.ErrNoRows {
			return "", validationf("invalid categoryId")
		}
		if err != nil {
			return "", fmt.Errorf("check category: %w", err)
		}
		return *categoryID, nil
	}

	var existingID string
	err := tx.QueryRowContext(ctx, "SELECT id FROM product_categories WHERE name = ?", categoryName).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("lookup category: %w", err)
	}

	newID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO product_categories (id, name, slug, display_order, is_active, created_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		newID, categoryName, slug.Make(categoryName), true, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("create category: %w", err)
	}
	return newID, nil
}
