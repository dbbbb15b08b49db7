package models

// PaymentMethodStat is one row of the per-method breakdown.
type PaymentMethodStat struct {
	Method  PaymentMethod `json:"method"`
	Count   int           `json:"count"`
	Revenue float64       `json:"revenue"`
}

// ProductStat is one row of the top-products ranking.
type ProductStat struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// DailyStat is one calendar day of the revenue series.
type DailyStat struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Count   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// SalesReport aggregates persisted sales within a filter window.
// It is recomputed from the sales/sale_items rows on every call.
type SalesReport struct {
	TotalSales    int                 `json:"totalSales"`
	TotalRevenue  float64             `json:"totalRevenue"`
	TotalItems    int                 `json:"totalItems"`
	AverageTicket float64             `json:"averageTicket"`
	ByMethod      []PaymentMethodStat `json:"salesByPaymentMethod"`
	TopProducts   []ProductStat       `json:"topProducts"`
	ByDate        []DailyStat         `json:"salesByDate"`
}
