package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/creamroast/pos-api/internal/models"
)

// newTestStore opens an isolated file-backed sqlite store per test, the
// same driver the process runs in production.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := Open("sqlite", filepath.Join(t.TempDir(), "pos_test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func mustCreateCategory(t *testing.T, s *Store, name string, order int) models.Category {
	t.Helper()
	cat, err := s.CreateCategory(context.Background(), models.CreateCategoryInput{
		Name:         name,
		DisplayOrder: order,
	})
	require.NoError(t, err)
	return cat
}

func mustCreateProduct(t *testing.T, s *Store, name, categoryID string, price float64) models.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), CreateProductParams{
		Name:       name,
		CategoryID: &categoryID,
		Price:      price,
	})
	require.NoError(t, err)
	return p
}
