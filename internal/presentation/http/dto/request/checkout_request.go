package request

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// ScanRequest resolves a scanned barcode and adds the first hit.
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// AdjustQuantityRequest changes a cart line by plus or minus one unit.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SaleTypeRequest selects the fiscal document for the next sale.
type SaleTypeRequest struct {
	SaleType string `json:"sale_type" binding:"required"`
}

// PaymentMethodRequest selects how the customer pays.
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// AmountPaidRequest records the paid field as the cashier typed it. The
// empty string means the field was cleared.
type AmountPaidRequest struct {
	Amount string `json:"amount"`
}

// TransactionInfoRequest records the card/transfer auxiliary fields.
type TransactionInfoRequest struct {
	TransactionNumber string `json:"transaction_number"`
	BankName          string `json:"bank_name"`
}

// CloseTillRequest closes the cashier's till. Confirm must be true: closing
// is irreversible and the UI asks the cashier first.
type CloseTillRequest struct {
	Confirm bool `json:"confirm"`
}
