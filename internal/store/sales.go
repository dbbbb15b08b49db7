package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creamroast/pos-api/internal/models"
)

const saleNumberAttempts = 5

// SaleLine is one requested line of a sale: a product reference and a
// quantity. The unit price is never taken from the caller; it is read
// from the catalog inside the sale transaction.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// CreateSaleParams is the input to CreateSale.
type CreateSaleParams struct {
	Items            []SaleLine
	PaymentMethod    models.PaymentMethod
	Discount         float64
	Tax              float64
	PaymentReference *string
	CashierID        *string
}

// CreateSale validates the request, prices each line from the catalog,
// allocates a unique sale number and persists the header plus all line
// items in a single transaction. Either every row becomes visible or
// none.
//
// Total is the sum of line subtotals minus discount. Tax is recorded as
// supplied but not folded into the total.
func (s *Store) CreateSale(ctx context.Context, params CreateSaleParams) (models.Sale, error) {
	if len(params.Items) == 0 {
		return models.Sale{}, validationf("a sale requires at least one item")
	}
	if !params.PaymentMethod.Valid() {
		return models.Sale{}, validationf("invalid payment method %q", params.PaymentMethod)
	}
	if params.Discount < 0 {
		return models.Sale{}, validationf("discount must not be negative")
	}
	if params.Tax < 0 {
		return models.Sale{}, validationf("tax must not be negative")
	}
	for _, line := range params.Items {
		if line.Quantity < 1 {
			return models.Sale{}, validationf("quantity for product %s must be at least 1", line.ProductID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Price every line from the catalog before writing anything.
	now := time.Now().UTC()
	var subtotal float64
	items := make([]models.SaleItem, 0, len(params.Items))

	for _, line := range params.Items {
		var name string
		var unitPrice float64
		err := tx.QueryRowContext(ctx, `
			SELECT p.name, pp.price
			FROM products p
			JOIN product_prices pp ON p.price_id = pp.id
			WHERE p.id = ? AND p.estado = ?`,
			line.ProductID, models.ProductActive).Scan(&name, &unitPrice)
		if err == sql.ErrNoRows {
			return models.Sale{}, fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
		}
		if err != nil {
			return models.Sale{}, fmt.Errorf("price lookup: %w", err)
		}

		lineSubtotal := unitPrice * float64(line.Quantity)
		subtotal += lineSubtotal
		items = append(items, models.SaleItem{
			ID:          uuid.NewString(),
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    lineSubtotal,
			CreatedAt:   now,
		})
	}

	if params.Discount > subtotal {
		return models.Sale{}, validationf("discount %.2f exceeds sale subtotal %.2f", params.Discount, subtotal)
	}
	total := subtotal - params.Discount

	sale := models.Sale{
		ID:               uuid.NewString(),
		CashierID:        params.CashierID,
		Total:            total,
		PaymentMethod:    params.PaymentMethod,
		PaymentReference: params.PaymentReference,
		Discount:         params.Discount,
		Tax:              params.Tax,
		Status:           models.SaleCompleted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	sale.SaleNumber, err = s.insertSaleHeader(ctx, tx, sale)
	if err != nil {
		return models.Sale{}, err
	}

	for i := range items {
		items[i].SaleID = sale.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			items[i].ID, sale.ID, items[i].ProductID, items[i].Quantity,
			items[i].UnitPrice, items[i].Subtotal, items[i].CreatedAt)
		if err != nil {
			return models.Sale{}, fmt.Errorf("insert sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, fmt.Errorf("commit: %w", err)
	}

	sale.Items = items
	if s.OnSaleCompleted != nil {
		s.OnSaleCompleted(sale)
	}
	return sale, nil
}

// insertSaleHeader writes the sale row, retrying with a fresh sale
// number on a uniqueness collision. Returns the allocated number.
func (s *Store) insertSaleHeader(ctx context.Context, tx *sql.Tx, sale models.Sale) (string, error) {
	for attempt := 0; attempt < saleNumberAttempts; attempt++ {
		number := generateSaleNumber(sale.CreatedAt, attempt)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales
				(id, sale_number, cashier_id, total, payment_method, payment_reference,
				descuento, impuestos, estado, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sale.ID, number, sale.CashierID, sale.Total, sale.PaymentMethod, sale.PaymentReference,
			sale.Discount, sale.Tax, sale.Status, sale.CreatedAt, sale.UpdatedAt)
		if err == nil {
			return number, nil
		}
		if isUniqueViolation(err) {
			s.log.WithField("saleNumber", number).Warn("sale number collision, retrying")
			continue
		}
		return "", fmt.Errorf("insert sale: %w", err)
	}
	return "", ErrSaleNumberExhausted
}

// generateSaleNumber builds the human-readable business identifier:
// "BOL-" + date without separators + 4-digit suffix. The first attempt
// derives the suffix from the wall clock as the original register did;
// retries draw a random one.
func generateSaleNumber(at time.Time, attempt int) string {
	var suffix int
	if attempt == 0 {
		suffix = int(time.Now().UnixMilli() % 10000)
	} else {
		suffix = rand.Intn(10000)
	}
	return fmt.Sprintf("BOL-%s-%04d", at.Format("20060102"), suffix)
}

// SaleFilter narrows ListSales and BuildReport. Zero values mean "no
// constraint". End is exclusive; callers wanting an inclusive calendar
// day pass the following midnight.
type SaleFilter struct {
	Start         *time.Time
	End           *time.Time
	PaymentMethod models.PaymentMethod
	Status        models.SaleStatus
	CashierID     string
}

func (f SaleFilter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Start != nil {
		conds = append(conds, "s.created_at >= ?")
		args = append(args, f.Start.UTC())
	}
	if f.End != nil {
		conds = append(conds, "s.created_at < ?")
		args = append(args, f.End.UTC())
	}
	if f.PaymentMethod != "" {
		conds = append(conds, "s.payment_method = ?")
		args = append(args, f.PaymentMethod)
	}
	if f.Status != "" {
		conds = append(conds, "s.estado = ?")
		args = append(args, f.Status)
	}
	if f.CashierID != "" {
		conds = append(conds, "s.cashier_id = ?")
		args = append(args, f.CashierID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListSales returns persisted sales matching the filter, newest first,
// joined with the cashier name.
func (s *Store) ListSales(ctx context.Context, filter SaleFilter) ([]models.Sale, error) {
	where, args := filter.where()
	query := `
		SELECT
			s.id, s.sale_number, s.cashier_id, u.name, s.total, s.payment_method,
			s.payment_reference, s.descuento, s.impuestos, s.estado,
			s.razon_cancelacion, s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN user_profiles u ON s.cashier_id = u.id` +
		where + `
		ORDER BY s.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func scanSale(row interface{ Scan(...interface{}) error }) (models.Sale, error) {
	var sale models.Sale
	var cashierName sql.NullString
	err := row.Scan(
		&sale.ID, &sale.SaleNumber, &sale.CashierID, &cashierName, &sale.Total,
		&sale.PaymentMethod, &sale.PaymentReference, &sale.Discount, &sale.Tax,
		&sale.Status, &sale.CancelReason, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return models.Sale{}, fmt.Errorf("scan sale: %w", err)
	}
	sale.CashierName = cashierName.String
	return sale, nil
}

// GetSale fetches one sale with its line items.
func (s *Store) GetSale(ctx context.Context, id string) (models.Sale, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			s.id, s.sale_number, s.cashier_id, u.name, s.total, s.payment_method,
			s.payment_reference, s.descuento, s.impuestos, s.estado,
			s.razon_cancelacion, s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN user_profiles u ON s.cashier_id = u.id
		WHERE s.id = ?`, id)

	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sale{}, ErrNotFound
		}
		return models.Sale{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity,
			si.unit_price, si.subtotal, si.created_at
		FROM sale_items si
		LEFT JOIN products p ON si.product_id = p.id
		WHERE si.sale_id = ?`, id)
	if err != nil {
		return models.Sale{}, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	sale.Items = []models.SaleItem{}
	for rows.Next() {
		var item models.SaleItem
		var productName sql.NullString
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &productName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.CreatedAt); err != nil {
			return models.Sale{}, fmt.Errorf("scan sale item: %w", err)
		}
		item.ProductName = productName.String
		sale.Items = append(sale.Items, item)
	}
	return sale, rows.Err()
}

// DefaultCancelReason is stored when the caller supplies none.
const DefaultCancelReason = "Cancelado por el usuario"

// CancelSale transitions a completed sale to cancelled, recording the
// reason. Cancelling an already-cancelled sale is a no-op that keeps
// the original reason; cancelling a refunded sale is rejected.
func (s *Store) CancelSale(ctx context.Context, id string, reason string) error {
	if reason == "" {
		reason = DefaultCancelReason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var status models.SaleStatus
	err = tx.QueryRowContext(ctx, "SELECT estado FROM sales WHERE id = ?", id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check sale: %w", err)
	}

	switch status {
	case models.SaleCancelled:
		return nil
	case models.SaleRefunded:
		return ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sales SET estado = ?, razon_cancelacion = ?, updated_at = ?
		WHERE id = ?`,
		models.SaleCancelled, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("cancel sale: %w", err)
	}

	return tx.Commit()
}
