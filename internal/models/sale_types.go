package models

import "time"

// PaymentMethod is the fixed set accepted by the register.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "efectivo"
	PaymentCard   PaymentMethod = "tarjeta"
	PaymentWallet PaymentMethod = "yape"
)

// Valid reports whether m is one of the enumerated payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentWallet:
		return true
	}
	return false
}

// SaleStatus is the lifecycle state stored in sales.estado.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completada"
	SaleCancelled SaleStatus = "cancelada"
	SaleRefunded  SaleStatus = "devuelta"
)

// Sale is the model for the 'sales' table.
// Only CancelSale mutates a sale after creation, and only the status,
// cancel reason and updated_at fields.
type Sale struct {
	ID               string        `json:"id" db:"id"`
	SaleNumber       string        `json:"saleNumber" db:"sale_number"`
	CashierID        *string       `json:"cashierId,omitempty" db:"cashier_id"`
	CashierName      string        `json:"cashierName,omitempty" db:"-"`
	Total            float64       `json:"total" db:"total"`
	PaymentMethod    PaymentMethod `json:"paymentMethod" db:"payment_method"`
	PaymentReference *string       `json:"paymentReference,omitempty" db:"payment_reference"`
	Discount         float64       `json:"discount" db:"descuento"`
	Tax              float64       `json:"tax" db:"impuestos"`
	Status           SaleStatus    `json:"status" db:"estado"`
	CancelReason     *string       `json:"cancelReason,omitempty" db:"razon_cancelacion"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`

	// Populated manually on detail reads
	Items []SaleItem `json:"items,omitempty" db:"-"`
}

// SaleItem is the model for the 'sale_items' table.
// UnitPrice is the catalog price captured at sale time; Subtotal is
// Quantity * UnitPrice at the moment the row was written. Immutable.
type SaleItem struct {
	ID          string    `json:"id" db:"id"`
	SaleID      string    `json:"saleId" db:"sale_id"`
	ProductID   string    `json:"productId" db:"product_id"`
	ProductName string    `json:"productName,omitempty" db:"-"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unitPrice" db:"unit_price"`
	Subtotal    float64   `json:"subtotal" db:"subtotal"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
