package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rcifuentes/caja-api/internal/domain/entity"
	"github.com/rcifuentes/caja-api/internal/domain/enum"
	"github.com/rcifuentes/caja-api/internal/domain/gateway"
	"github.com/rcifuentes/caja-api/internal/infrastructure/posclient"
	"github.com/rcifuentes/caja-api/internal/infrastructure/session"
	"github.com/rcifuentes/caja-api/pkg/apperror"
	"github.com/rcifuentes/caja-api/pkg/currency"
)

// CheckoutService owns the cart mirror and the payment fields of each
// cashier's screen. Every mutation goes through a full recompute so the
// displayed total and change can never drift from the cart contents.
type CheckoutService struct {
	pos      gateway.PosGateway
	sessions *session.Store
	money    *currency.Formatter
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(pos gateway.PosGateway, sessions *session.Store, money *currency.Formatter) *CheckoutService {
	return &CheckoutService{
		pos:      pos,
		sessions: sessions,
		money:    money,
	}
}

// CheckoutLine is one cart row as the screen renders it.
type CheckoutLine struct {
	ProductID        int64  `json:"product_id"`
	Name             string `json:"name"`
	UnitPrice        int64  `json:"unit_price"`
	UnitPriceDisplay string `json:"unit_price_display"`
	Quantity         int    `json:"quantity"`
	Subtotal         int64  `json:"subtotal"`
	SubtotalDisplay  string `json:"subtotal_display"`
}

// CheckoutView is everything the screen needs to re-render after a state
// change: cart rows, total, change, and which payment fields are locked or
// visible.
type CheckoutView struct {
	Items                   []CheckoutLine     `json:"items"`
	Total                   int64              `json:"total"`
	TotalDisplay            string             `json:"total_display"`
	SaleType                enum.SaleType      `json:"sale_type"`
	PaymentMethod           enum.PaymentMethod `json:"payment_method"`
	AmountPaid              string             `json:"amount_paid"`
	AmountPaidLocked        bool               `json:"amount_paid_locked"`
	Change                  int64              `json:"change"`
	ChangeDisplay           string             `json:"change_display"`
	TransactionPanelVisible bool               `json:"transaction_panel_visible"`
	TransactionNumber       string             `json:"transaction_number"`
	BankPanelVisible        bool               `json:"bank_panel_visible"`
	BankName                string             `json:"bank_name"`
}

// ConfirmResult carries the post-sale screen state and the receipt the UI
// opens in a new tab.
type ConfirmResult struct {
	View      *CheckoutView `json:"checkout"`
	ReportURL string        `json:"report_url,omitempty"`
}

// View recomputes and returns the current screen state. When the payment
// method locks the paid field, recomputing re-forces it to the total, so a
// read can rewrite that one field; it never touches the cart.
func (s *CheckoutService) View(cashierID uuid.UUID) *CheckoutView {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	return s.recompute(checkout)
}

// AddItem asks the sale service to add one unit of the product and adopts
// the returned cart-line snapshot as authoritative. A zero product ID is a
// no-op. On any remote failure the local cart is left untouched.
func (s *CheckoutService) AddItem(ctx context.Context, cashierID uuid.UUID, productID int64) (*CheckoutView, error) {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	if productID == 0 {
		return s.recompute(checkout), nil
	}

	snapshot, err := s.pos.AddToCart(ctx, productID)
	if err != nil {
		return nil, err
	}

	for _, item := range snapshot {
		if item.ProductID == productID {
			checkout.Cart.Put(item)
			break
		}
	}

	return s.recompute(checkout), nil
}

// Scan resolves a scanned barcode and adds the first hit to the cart.
func (s *CheckoutService) Scan(ctx context.Context, cashierID uuid.UUID, code string) (*CheckoutView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Ingresa un código de barras.")
	}

	products, err := s.pos.SearchProducts(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperror.NewNotFoundError("Producto no encontrado. Intenta de nuevo.")
	}

	return s.AddItem(ctx, cashierID, products[0].ID)
}

// ChangeQuantity adjusts a line by plus or minus one unit. A line reaching
// zero is removed. Unknown product IDs are a defensive no-op.
func (s *CheckoutService) ChangeQuantity(cashierID uuid.UUID, productID int64, delta int) (*CheckoutView, error) {
	if delta != 1 && delta != -1 {
		return nil, apperror.NewBadRequestError("El ajuste de cantidad debe ser +1 o -1.")
	}

	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	checkout.Cart.Adjust(productID, delta)
	return s.recompute(checkout), nil
}

// SetSaleType switches the fiscal document for the next sale.
func (s *CheckoutService) SetSaleType(cashierID uuid.UUID, saleType enum.SaleType) (*CheckoutView, error) {
	if !saleType.Valid() {
		return nil, apperror.NewBadRequestError("Tipo de venta inválido.")
	}

	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	checkout.SaleType = saleType
	return s.recompute(checkout), nil
}

// SetPaymentMethod switches the payment method. Card and transfer payments
// force the paid field to the total and lock it; switching back to cash
// unlocks the field keeping whatever was last entered. Leaving the non-cash
// methods clears the transaction fields they required.
func (s *CheckoutService) SetPaymentMethod(cashierID uuid.UUID, method enum.PaymentMethod) (*CheckoutView, error) {
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("Forma de pago inválida.")
	}

	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	checkout.PaymentMethod = method
	if !method.RequiresTransactionNumber() {
		checkout.TransactionNumber = ""
	}
	if !method.RequiresBank() {
		checkout.BankName = ""
	}

	return s.recompute(checkout), nil
}

// SetAmountPaid records the paid field as entered. While a non-cash method
// is selected the field is locked and the entry is ignored.
func (s *CheckoutService) SetAmountPaid(cashierID uuid.UUID, raw string) *CheckoutView {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	if !checkout.PaymentMethod.LocksAmountPaid() {
		checkout.AmountPaidRaw = raw
	}
	return s.recompute(checkout)
}

// SetTransactionInfo records the transaction number and bank name fields.
func (s *CheckoutService) SetTransactionInfo(cashierID uuid.UUID, transactionNumber, bankName string) *CheckoutView {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	if checkout.PaymentMethod.RequiresTransactionNumber() {
		checkout.TransactionNumber = strings.TrimSpace(transactionNumber)
	}
	if checkout.PaymentMethod.RequiresBank() {
		checkout.BankName = strings.TrimSpace(bankName)
	}
	return s.recompute(checkout)
}

// Validate runs the pre-confirmation checks, failing fast on the first
// violation. The UI calls this before showing the confirmation dialog.
func (s *CheckoutService) Validate(cashierID uuid.UUID) error {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	return s.validate(checkout)
}

func (s *CheckoutService) validate(checkout *session.Checkout) error {
	if checkout.Cart.IsEmpty() {
		return apperror.NewValidationError("El carrito está vacío.")
	}
	if checkout.PaymentMethod.IsCash() && parseAmount(checkout.AmountPaidRaw) < checkout.Cart.Total() {
		return apperror.NewValidationError("El monto pagado es insuficiente.")
	}
	if checkout.PaymentMethod.RequiresTransactionNumber() && strings.TrimSpace(checkout.TransactionNumber) == "" {
		return apperror.NewValidationError("Debe ingresar el número de transacción.")
	}
	if checkout.PaymentMethod.RequiresBank() && strings.TrimSpace(checkout.BankName) == "" {
		return apperror.NewValidationError("Debe ingresar el nombre del banco.")
	}
	return nil
}

// Confirm re-validates, builds the sale draft and submits it. On success the
// local cart and payment fields are cleared, the sale service's session cart
// is cleared fire-and-forget, and the receipt URL is handed back. Sale type
// and payment method stay selected for the next sale.
func (s *CheckoutService) Confirm(ctx context.Context, cashierID uuid.UUID) (*ConfirmResult, error) {
	checkout := s.sessions.Get(cashierID)
	checkout.Lock()
	defer checkout.Unlock()

	if err := s.validate(checkout); err != nil {
		return nil, err
	}

	draft := s.buildSaleDraft(checkout)
	result, err := s.pos.ConfirmSale(ctx, draft)
	if err != nil {
		return nil, err
	}

	checkout.Cart.Clear()
	checkout.AmountPaidRaw = ""
	checkout.TransactionNumber = ""
	checkout.BankName = ""

	s.clearRemoteCart(ctx)

	return &ConfirmResult{
		View:      s.recompute(checkout),
		ReportURL: result.ReportURL,
	}, nil
}

// buildSaleDraft snapshots the checkout into the submission payload. The
// auxiliary fields travel only when the payment method requires them.
func (s *CheckoutService) buildSaleDraft(checkout *session.Checkout) *entity.SaleDraft {
	draft := &entity.SaleDraft{
		Items:         checkout.Cart.Items(),
		SaleType:      checkout.SaleType,
		PaymentMethod: checkout.PaymentMethod,
		AmountPaid:    parseAmount(checkout.AmountPaidRaw),
	}
	if checkout.PaymentMethod.RequiresTransactionNumber() {
		draft.TransactionNumber = strings.TrimSpace(checkout.TransactionNumber)
	}
	if checkout.PaymentMethod.RequiresBank() {
		draft.BankName = strings.TrimSpace(checkout.BankName)
	}
	return draft
}

// clearRemoteCart tells the sale service to drop its session cart. The sale
// is already recorded at this point, so a failure here only risks a stale
// remote mirror; it is logged and not surfaced.
func (s *CheckoutService) clearRemoteCart(ctx context.Context) {
	cleanupCtx := context.Background()
	if token, ok := posclient.CashierTokenFromContext(ctx); ok {
		cleanupCtx = posclient.WithCashierToken(cleanupCtx, token)
	}
	go func() {
		cleanupCtx, cancel := context.WithTimeout(cleanupCtx, 10*time.Second)
		defer cancel()
		if err := s.pos.ClearCart(cleanupCtx); err != nil {
			log.Printf("Warning: failed to clear remote cart after sale: %v", err)
		}
	}()
}

// recompute derives the full screen state from the checkout. Deterministic:
// calling it twice without an intervening mutation yields the same view.
func (s *CheckoutService) recompute(checkout *session.Checkout) *CheckoutView {
	total := checkout.Cart.Total()

	if checkout.PaymentMethod.LocksAmountPaid() {
		checkout.AmountPaidRaw = strconv.FormatInt(total, 10)
	}

	var change int64
	var changeDisplay string
	switch {
	case !checkout.PaymentMethod.IsCash():
		change = 0
		changeDisplay = s.money.Display(0)
	case strings.TrimSpace(checkout.AmountPaidRaw) == "":
		// Nothing entered yet: show the shortfall, the whole total.
		change = -total
		changeDisplay = s.money.DisplayShortfall(total)
	default:
		change = parseAmount(checkout.AmountPaidRaw) - total
		changeDisplay = s.money.Display(change)
	}

	items := checkout.Cart.Items()
	lines := make([]CheckoutLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CheckoutLine{
			ProductID:        item.ProductID,
			Name:             item.Name,
			UnitPrice:        item.UnitPrice,
			UnitPriceDisplay: s.money.Display(item.UnitPrice),
			Quantity:         item.Quantity,
			Subtotal:         item.Subtotal(),
			SubtotalDisplay:  s.money.Display(item.Subtotal()),
		})
	}

	return &CheckoutView{
		Items:                   lines,
		Total:                   total,
		TotalDisplay:            s.money.Display(total),
		SaleType:                checkout.SaleType,
		PaymentMethod:           checkout.PaymentMethod,
		AmountPaid:              checkout.AmountPaidRaw,
		AmountPaidLocked:        checkout.PaymentMethod.LocksAmountPaid(),
		Change:                  change,
		ChangeDisplay:           changeDisplay,
		TransactionPanelVisible: checkout.PaymentMethod.RequiresTransactionNumber(),
		TransactionNumber:       checkout.TransactionNumber,
		BankPanelVisible:        checkout.PaymentMethod.RequiresBank(),
		BankName:                checkout.BankName,
	}
}

// parseAmount reads the paid field as entered. Blank, unparseable, non-finite
// or out-of-range input counts as zero; fractions are truncated to whole
// pesos. ParseFloat accepts "NaN" and "Inf" spellings, and converting those
// to int64 is not defined, so they are filtered before the conversion.
func parseAmount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}
