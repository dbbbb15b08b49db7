package store

import (
	"context"
	"fmt"

	"github.com/creamroast/pos-api/internal/models"
)

const topProductLimit = 5

// BuildReport aggregates the sales inside the filter window. With no
// explicit status filter only completed sales count, so cancelled and
// refunded transactions never inflate revenue. Everything is recomputed
// from the persisted rows on each call; nothing is cached.
func (s *Store) BuildReport(ctx context.Context, filter SaleFilter) (models.SalesReport, error) {
	if filter.Status == "" {
		filter.Status = models.SaleCompleted
	}
	where, args := filter.where()

	report := models.SalesReport{
		ByMethod:    []models.PaymentMethodStat{},
		TopProducts: []models.ProductStat{},
		ByDate:      []models.DailyStat{},
	}

	// Header totals
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(s.total), 0) FROM sales s`+where, args...).
		Scan(&report.TotalSales, &report.TotalRevenue)
	if err != nil {
		return report, fmt.Errorf("report totals: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id`+where, args...).
		Scan(&report.TotalItems)
	if err != nil {
		return report, fmt.Errorf("report item count: %w", err)
	}

	if report.TotalSales > 0 {
		report.AverageTicket = report.TotalRevenue / float64(report.TotalSales)
	}

	// Breakdown by payment method
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.payment_method, COUNT(*), COALESCE(SUM(s.total), 0)
		FROM sales s`+where+`
		GROUP BY s.payment_method
		ORDER BY s.payment_method ASC`, args...)
	if err != nil {
		return report, fmt.Errorf("report by method: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var stat models.PaymentMethodStat
		if err := rows.Scan(&stat.Method, &stat.Count, &stat.Revenue); err != nil {
			return report, fmt.Errorf("scan method stat: %w", err)
		}
		report.ByMethod = append(report.ByMethod, stat)
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	// Top products by quantity sold
	prodRows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT si.product_id, COALESCE(p.name, ''), SUM(si.quantity), SUM(si.subtotal)
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		LEFT JOIN products p ON si.product_id = p.id
		%s
		GROUP BY si.product_id, p.name
		ORDER BY SUM(si.quantity) DESC
		LIMIT %d`, where, topProductLimit), args...)
	if err != nil {
		return report, fmt.Errorf("report top products: %w", err)
	}
	defer prodRows.Close()
	for prodRows.Next() {
		var stat models.ProductStat
		if err := prodRows.Scan(&stat.ProductID, &stat.ProductName, &stat.Quantity, &stat.Revenue); err != nil {
			return report, fmt.Errorf("scan product stat: %w", err)
		}
		report.TopProducts = append(report.TopProducts, stat)
	}
	if err := prodRows.Err(); err != nil {
		return report, err
	}

	// Per-calendar-day series. Timestamps are stored with the date as
	// the leading ten characters under both drivers.
	dayRows, err := s.db.QueryContext(ctx, `
		SELECT SUBSTR(s.created_at, 1, 10), COUNT(*), COALESCE(SUM(s.total), 0)
		FROM sales s`+where+`
		GROUP BY SUBSTR(s.created_at, 1, 10)
		ORDER BY SUBSTR(s.created_at, 1, 10) ASC`, args...)
	if err != nil {
		return report, fmt.Errorf("report by date: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var stat models.DailyStat
		if err := dayRows.Scan(&stat.Date, &stat.Count, &stat.Revenue); err != nil {
			return report, fmt.Errorf("scan daily stat: %w", err)
		}
		report.ByDate = append(report.ByDate, stat)
	}
	return report, dayRows.Err()
}
