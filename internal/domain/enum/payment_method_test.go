package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodFieldRules(t *testing.T) {
	cases := []struct {
		method      PaymentMethod
		locksAmount bool
		needsTxn    bool
		needsBank   bool
	}{
		{PaymentCash, false, false, false},
		{PaymentDebit, true, true, false},
		{PaymentCredit, true, true, false},
		{PaymentTransfer, true, true, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.method), func(t *testing.T) {
			assert.True(t, tc.method.Valid())
			assert.Equal(t, tc.locksAmount, tc.method.LocksAmountPaid())
			assert.Equal(t, tc.needsTxn, tc.method.RequiresTransactionNumber())
			assert.Equal(t, tc.needsBank, tc.method.RequiresBank())
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestSaleTypeValid(t *testing.T) {
	assert.True(t, SaleTypeReceipt.Valid())
	assert.True(t, SaleTypeInvoice.Valid())
	assert.False(t, SaleType("guia").Valid())
}
