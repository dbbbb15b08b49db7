package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamroast/pos-api/internal/models"
)

func TestCreateSaleComputesTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Americano", cat.ID, 8.50)

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: models.PaymentCash,
		Discount:      1.00,
	})
	require.NoError(t, err)

	assert.InDelta(t, 16.00, sale.Total, 0.001)
	assert.Equal(t, models.SaleCompleted, sale.Status)
	assert.True(t, strings.HasPrefix(sale.SaleNumber, "BOL-"), "sale number %q", sale.SaleNumber)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Americano", sale.Items[0].ProductName)
	assert.InDelta(t, 8.50, sale.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 17.00, sale.Items[0].Subtotal, 0.001)

	// Round-trips with its items.
	got, err := s.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.SaleNumber, got.SaleNumber)
	assert.InDelta(t, 16.00, got.Total, 0.001)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCreateSalePricesFromCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)
	require.InDelta(t, 12.0, sale.Total, 0.001)

	// A later price change must not touch the recorded sale.
	newPrice := 15.0
	_, err = s.UpdateProduct(ctx, p.ID, UpdateProductParams{Price: &newPrice})
	require.NoError(t, err)

	got, err := s.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, got.Total, 0.001)
	assert.InDelta(t, 12.0, got.Items[0].UnitPrice, 0.001)

	// New sales pick up the new price.
	sale2, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, sale2.Total, 0.001)
}

func TestCreateSaleValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	cases := []struct {
		name   string
		params CreateSaleParams
	}{
		{"empty items", CreateSaleParams{PaymentMethod: models.PaymentCash}},
		{"zero quantity", CreateSaleParams{
			Items:         []SaleLine{{ProductID: p.ID, Quantity: 0}},
			PaymentMethod: models.PaymentCash,
		}},
		{"bad payment method", CreateSaleParams{
			Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: "cheque",
		}},
		{"negative discount", CreateSaleParams{
			Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: models.PaymentCash,
			Discount:      -1,
		}},
		{"discount exceeds subtotal", CreateSaleParams{
			Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: models.PaymentCash,
			Discount:      20,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateSale(ctx, tc.params)
			assert.True(t, IsValidation(err), "want validation error, got %v", err)
		})
	}

	// Nothing was written by the rejected attempts.
	sales, err := s.ListSales(ctx, SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateSale(context.Background(), CreateSaleParams{
		Items:         []SaleLine{{ProductID: "missing", Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSaleRejectsInactiveProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)
	require.NoError(t, s.DeactivateProduct(ctx, p.ID))

	_, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaleNumbersAreUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		sale, err := s.CreateSale(ctx, CreateSaleParams{
			Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: models.PaymentCash,
		})
		require.NoError(t, err)
		assert.False(t, seen[sale.SaleNumber], "duplicate sale number %s", sale.SaleNumber)
		seen[sale.SaleNumber] = true
	}
}

func TestListSalesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 10.0)

	cash, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)
	card, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)
	require.NoError(t, s.CancelSale(ctx, card.ID, ""))

	byMethod, err := s.ListSales(ctx, SaleFilter{PaymentMethod: models.PaymentCash})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, cash.ID, byMethod[0].ID)

	byStatus, err := s.ListSales(ctx, SaleFilter{Status: models.SaleCancelled})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, card.ID, byStatus[0].ID)

	all, err := s.ListSales(ctx, SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCancelSaleTransitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentWallet,
	})
	require.NoError(t, err)

	require.NoError(t, s.CancelSale(ctx, sale.ID, "cliente se arrepintió"))

	got, err := s.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaleCancelled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "cliente se arrepintió", *got.CancelReason)

	// Repeat cancellation is a no-op keeping the original reason.
	require.NoError(t, s.CancelSale(ctx, sale.ID, "otra razon"))
	got, err = s.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "cliente se arrepintió", *got.CancelReason)
}

func TestCancelSaleDefaultReason(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)

	require.NoError(t, s.CancelSale(ctx, sale.ID, ""))
	got, err := s.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, DefaultCancelReason, *got.CancelReason)
}

func TestCancelSaleRefundedRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)

	_, err = s.db.Exec("UPDATE sales SET estado = ? WHERE id = ?", models.SaleRefunded, sale.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.CancelSale(ctx, sale.ID, ""), ErrInvalidTransition)
}

func TestCancelSaleNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.CancelSale(context.Background(), "missing", ""), ErrNotFound)
}

func TestGetSaleNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSale(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOnSaleCompletedHook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cat := mustCreateCategory(t, s, "Bebidas", 1)
	p := mustCreateProduct(t, s, "Latte", cat.ID, 12.0)

	var captured models.Sale
	s.OnSaleCompleted = func(sale models.Sale) { captured = sale }

	sale, err := s.CreateSale(ctx, CreateSaleParams{
		Items:         []SaleLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, sale.ID, captured.ID)
	assert.Len(t, captured.Items, 1)
}
