package enum

// PaymentMethod represents how the customer pays for a sale. The values are
// the wire values the sale service expects.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentDebit    PaymentMethod = "debito"
	PaymentCredit   PaymentMethod = "credito"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// IsCash reports whether the method is a cash payment.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentCash
}

// LocksAmountPaid reports whether the amount-paid field is forced to the cart
// total for this method. Card and transfer payments always charge the exact
// total, so the cashier cannot edit the amount.
func (m PaymentMethod) LocksAmountPaid() bool {
	return m == PaymentDebit || m == PaymentCredit || m == PaymentTransfer
}

// RequiresTransactionNumber reports whether a transaction number must be
// captured before the sale can be confirmed.
func (m PaymentMethod) RequiresTransactionNumber() bool {
	return m == PaymentDebit || m == PaymentCredit || m == PaymentTransfer
}

// RequiresBank reports whether the paying bank must be captured before the
// sale can be confirmed.
func (m PaymentMethod) RequiresBank() bool {
	return m == PaymentTransfer
}
