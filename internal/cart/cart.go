// Package cart holds the in-progress selection of products for one
// register session. It is pure in-memory state with no suspension
// points: one cart belongs to exactly one session and is never shared,
// so there is no locking here.
package cart

import "github.com/creamroast/pos-api/internal/models"

// Item is one cart line: a product and a positive quantity.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart accumulates items for a single checkout.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product in the cart, incrementing the
// quantity if the product is already present.
func (c *Cart) Add(p models.Product) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
}

// Remove drops the matching line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line quantity exactly. A quantity of zero or
// less removes the line.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total is the pure line-item sum: price times quantity over every
// line. Discount and tax belong to sale creation, not here.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Quantity reports how many units of the product the cart holds.
func (c *Cart) Quantity(productID string) int {
	for _, item := range c.items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Lines converts the cart into the product/quantity pairs the sale
// endpoint accepts.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, Line{ProductID: item.Product.ID, Quantity: item.Quantity})
	}
	return lines
}

// Line is a product reference plus quantity, ready for checkout.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
