package gateway

import (
	"context"

	"github.com/rcifuentes/caja-api/internal/domain/entity"
)

// SaleResult is the sale service's answer to a confirmed sale.
type SaleResult struct {
	ReportURL string
}

// TillClosing is the sale service's answer to a till close.
type TillClosing struct {
	TillID int64
}

// PosGateway defines the operations the checkout screen needs from the
// remote catalog/sale service. The service is the authority for the cart,
// stock and sale records; this side only mirrors.
type PosGateway interface {
	// SearchProducts looks products up by free text or scanned code.
	// An empty slice means nothing matched.
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)

	// AddToCart adds one unit of the product to the session cart on the
	// service side and returns the updated cart snapshot.
	AddToCart(ctx context.Context, productID int64) ([]entity.LineItem, error)

	// ConfirmSale submits the sale draft for processing.
	ConfirmSale(ctx context.Context, draft *entity.SaleDraft) (*SaleResult, error)

	// ClearCart empties the session cart on the service side.
	ClearCart(ctx context.Context) error

	// CloseTill closes the cashier's open till.
	CloseTill(ctx context.Context) (*TillClosing, error)
}
