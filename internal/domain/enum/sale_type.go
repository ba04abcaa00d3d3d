package enum

// SaleType represents the fiscal document issued for a sale.
type SaleType string

const (
	SaleTypeReceipt SaleType = "boleta"
	SaleTypeInvoice SaleType = "factura"
)

// Valid reports whether t is one of the accepted sale types.
func (t SaleType) Valid() bool {
	return t == SaleTypeReceipt || t == SaleTypeInvoice
}
