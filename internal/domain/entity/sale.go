package entity

import "github.com/rcifuentes/caja-api/internal/domain/enum"

// SaleDraft is the payload submitted to the sale service when the cashier
// confirms a purchase. It is built transiently at confirmation time from the
// current checkout state and discarded after submission.
type SaleDraft struct {
	Items             []LineItem         `json:"items"`
	SaleType          enum.SaleType      `json:"sale_type"`
	PaymentMethod     enum.PaymentMethod `json:"payment_method"`
	AmountPaid        int64              `json:"amount_paid"`
	TransactionNumber string             `json:"transaction_number"`
	BankName          string             `json:"bank_name"`
}
