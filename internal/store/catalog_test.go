package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas Calientes", 1)

	created := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Latte", created.Name)
	assert.InDelta(t, 12.0, created.Price, 0.001)
	assert.Equal(t, "Bebidas Calientes", created.CategoryName)

	products, err := s.ListActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)
	assert.Equal(t, "Latte", products[0].Name)
	assert.InDelta(t, 12.0, products[0].Price, 0.001)
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, CreateProductParams{Name: "", CategoryName: "Bebidas", Price: 5})
	assert.True(t, IsValidation(err))

	_, err = s.CreateProduct(ctx, CreateProductParams{Name: "Latte", CategoryName: "Bebidas", Price: 0})
	assert.True(t, IsValidation(err))

	_, err = s.CreateProduct(ctx, CreateProductParams{Name: "Latte", Price: 5})
	assert.True(t, IsValidation(err))

	bogus := "no-such-category"
	_, err = s.CreateProduct(ctx, CreateProductParams{Name: "Latte", CategoryID: &bogus, Price: 5})
	assert.True(t, IsValidation(err))
}

func TestCreateProductResolvesCategoryByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	existing := mustCreateCategory(t, s, "Bebidas", 1)

	p, err := s.CreateProduct(ctx, CreateProductParams{Name: "Latte", CategoryName: "Bebidas", Price: 12})
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, existing.ID, *p.CategoryID)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

// Category matching is case-sensitive exact match: a name variant
// creates a second category instead of reusing the first.
func TestCategoryAutoCreateDuplicatesOnNameVariant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateCategory(t, s, "Bebidas", 1)

	_, err := s.CreateProduct(ctx, CreateProductParams{Name: "Latte", CategoryName: "bebidas", Price: 12})
	require.NoError(t, err)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestListActiveProductsOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pastries := mustCreateCategory(t, s, "Pasteles", 2)
	drinks := mustCreateCategory(t, s, "Bebidas", 1)

	mustCreateProduct(t, s, "Cheesecake", pastries.ID, 15)
	mustCreateProduct(t, s, "Latte", drinks.ID, 12)
	mustCreateProduct(t, s, "Americano", drinks.ID, 8)

	products, err := s.ListActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	// Category display order first, then product name.
	assert.Equal(t, "Americano", products[0].Name)
	assert.Equal(t, "Latte", products[1].Name)
	assert.Equal(t, "Cheesecake", products[2].Name)
}

func TestUpdateProductMergesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12)

	newName := "Latte Grande"
	newPrice := 14.5
	updated, err := s.UpdateProduct(ctx, p.ID, UpdateProductParams{Name: &newName, Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, "Latte Grande", updated.Name)
	assert.InDelta(t, 14.5, updated.Price, 0.001)
	assert.Equal(t, cat.ID, *updated.CategoryID) // untouched
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
}

func TestUpdateProductNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "Latte"
	_, err := s.UpdateProduct(context.Background(), "missing", UpdateProductParams{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12)

	require.NoError(t, s.DeactivateProduct(ctx, p.ID))

	products, err := s.ListActiveProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// Still visible in the admin listing.
	all, err := s.ListAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "inactivo", string(all[0].Status))

	// Idempotent.
	require.NoError(t, s.DeactivateProduct(ctx, p.ID))

	// Missing ids are still an error.
	assert.ErrorIs(t, s.DeactivateProduct(ctx, "missing"), ErrNotFound)
}

func TestListCategoriesOrdering(t *testing.T) {
	s := newTestStore(t)
	mustCreateCategory(t, s, "Pasteles", 3)
	mustCreateCategory(t, s, "Bebidas Frias", 2)
	mustCreateCategory(t, s, "Bebidas Calientes", 1)

	cats, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Bebidas Calientes", cats[0].Name)
	assert.Equal(t, "Bebidas Frias", cats[1].Name)
	assert.Equal(t, "Pasteles", cats[2].Name)
	assert.Equal(t, "bebidas-calientes", cats[0].Slug)
}
