package entity

import "sort"

// LineItem is one product's entry in the cart. UnitPrice is stored in whole
// pesos; quantities below 1 never appear in a cart, a line whose quantity
// drops to zero is removed instead.
type LineItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns quantity times unit price for the line.
func (l LineItem) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Cart is the terminal-side mirror of the cart held by the sale service,
// keyed by product ID. The sale service stays authoritative; the mirror only
// exists so the screen can render totals without a round trip.
type Cart struct {
	items map[int64]LineItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{items: make(map[int64]LineItem)}
}

// Put inserts or replaces the line for the item's product ID. Snapshots
// returned by the sale service are adopted verbatim through this method.
func (c *Cart) Put(item LineItem) {
	if item.ProductID == 0 || item.Quantity <= 0 {
		return
	}
	c.items[item.ProductID] = item
}

// Adjust changes a line's quantity by delta, removing the line when the
// result is zero or less. Unknown product IDs are ignored. It reports
// whether the cart changed.
func (c *Cart) Adjust(productID int64, delta int) bool {
	item, ok := c.items[productID]
	if !ok {
		return false
	}
	item.Quantity += delta
	if item.Quantity <= 0 {
		delete(c.items, productID)
		return true
	}
	c.items[productID] = item
	return true
}

// Get returns the line for productID, if present.
func (c *Cart) Get(productID int64) (LineItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

// Total recomputes the cart total from scratch. It is never cached.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Items returns the lines ordered by product ID so the screen renders rows
// in a stable order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = make(map[int64]LineItem)
}
