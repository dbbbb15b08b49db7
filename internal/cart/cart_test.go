package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creamroast/pos-api/internal/models"
)

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "product-" + id, Price: price, Status: models.ProductActive}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := New()
	espresso := product("p1", 8.50)

	c.Add(espresso)
	c.Add(espresso)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Quantity("p1"))
	assert.InDelta(t, 17.00, c.Total(), 0.001)
}

func TestAddThenRemoveLeavesEmptyCart(t *testing.T) {
	c := New()
	latte := product("p1", 12.00)

	c.Add(latte)
	c.Add(latte)
	c.Remove("p1")

	assert.Equal(t, 0, c.Len())
	assert.Zero(t, c.Total())
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	c := New()
	c.Add(product("p1", 5.00))

	c.Remove("missing")

	assert.Equal(t, 1, c.Len())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(product("p1", 4.00))

	c.SetQuantity("p1", 3)
	assert.Equal(t, 3, c.Quantity("p1"))
	assert.InDelta(t, 12.00, c.Total(), 0.001)

	// Zero or negative removes the line.
	c.SetQuantity("p1", 0)
	assert.Equal(t, 0, c.Len())
}

func TestTotalSumsAcrossLines(t *testing.T) {
	c := New()
	c.Add(product("p1", 8.50))
	c.Add(product("p1", 8.50))
	c.Add(product("p2", 12.00))

	assert.InDelta(t, 29.00, c.Total(), 0.001)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(product("p1", 8.50))
	c.Add(product("p2", 12.00))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Items())
}

func TestLinesMatchCartContents(t *testing.T) {
	c := New()
	c.Add(product("p1", 8.50))
	c.Add(product("p1", 8.50))
	c.Add(product("p2", 12.00))

	lines := c.Lines()
	assert.Equal(t, []Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}, lines)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(product("p1", 8.50))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Quantity("p1"))
}
