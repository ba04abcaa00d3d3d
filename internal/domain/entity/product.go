package entity

// Product is a catalog hit returned by the sale service's product search.
// Only the fields the checkout screen needs travel this far; the full
// catalog record stays in the back office.
type Product struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SellPrice int64  `json:"sell_price"`
}
