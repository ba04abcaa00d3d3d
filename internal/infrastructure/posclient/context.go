package posclient

import "context"

type cashierTokenKey struct{}

// WithCashierToken stores the cashier's bearer token so outgoing calls to
// the sale service run under the same identity the screen authenticated
// with.
func WithCashierToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, cashierTokenKey{}, token)
}

// CashierTokenFromContext returns the forwarded cashier token, if any.
func CashierTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(cashierTokenKey{}).(string)
	return token, ok && token != ""
}
