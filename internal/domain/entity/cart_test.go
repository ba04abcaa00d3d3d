package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotalRecomputedFromScratch(t *testing.T) {
	cart := NewCart()
	assert.Equal(t, int64(0), cart.Total())

	cart.Put(LineItem{ProductID: 1, Name: "Pan", UnitPrice: 1000, Quantity: 2})
	cart.Put(LineItem{ProductID: 2, Name: "Leche", UnitPrice: 500, Quantity: 1})
	assert.Equal(t, int64(2500), cart.Total())

	// Replacing a line replaces it, never accumulates.
	cart.Put(LineItem{ProductID: 1, Name: "Pan", UnitPrice: 1000, Quantity: 3})
	assert.Equal(t, int64(3500), cart.Total())
}

func TestCartAdjustRemovesLineAtZero(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 7, Name: "Azúcar", UnitPrice: 900, Quantity: 1})
	cart.Put(LineItem{ProductID: 8, Name: "Sal", UnitPrice: 400, Quantity: 2})

	require.True(t, cart.Adjust(7, -1))

	assert.Equal(t, 1, cart.Len())
	_, ok := cart.Get(7)
	assert.False(t, ok)
	assert.Equal(t, int64(800), cart.Total())
}

func TestCartAdjustUnknownProductIsNoOp(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 1, Name: "Pan", UnitPrice: 1000, Quantity: 1})

	assert.False(t, cart.Adjust(99, 1))
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, int64(1000), cart.Total())
}

func TestCartAdjustIncrement(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 1, Name: "Pan", UnitPrice: 1000, Quantity: 1})

	require.True(t, cart.Adjust(1, 1))

	item, ok := cart.Get(1)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(2000), item.Subtotal())
}

func TestCartItemsOrderedByProductID(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 30, Name: "C", UnitPrice: 1, Quantity: 1})
	cart.Put(LineItem{ProductID: 10, Name: "A", UnitPrice: 1, Quantity: 1})
	cart.Put(LineItem{ProductID: 20, Name: "B", UnitPrice: 1, Quantity: 1})

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(10), items[0].ProductID)
	assert.Equal(t, int64(20), items[1].ProductID)
	assert.Equal(t, int64(30), items[2].ProductID)
}

func TestCartPutRejectsInvalidLines(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 0, Name: "Fantasma", UnitPrice: 100, Quantity: 1})
	cart.Put(LineItem{ProductID: 5, Name: "Vacío", UnitPrice: 100, Quantity: 0})

	assert.True(t, cart.IsEmpty())
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.Put(LineItem{ProductID: 1, Name: "Pan", UnitPrice: 1000, Quantity: 2})

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, int64(0), cart.Total())
}
