package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rcifuentes/caja-api/internal/application/service"
	"github.com/rcifuentes/caja-api/internal/domain/enum"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/request"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the checkout screen's cart and payment requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetCart handles reading the current screen state
func (h *CheckoutHandler) GetCart(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	view := h.checkoutService.View(*cashierID)
	response.OK(c, "Checkout retrieved successfully", view)
}

// AddItem handles adding one unit of a product to the cart
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.AddItem(c.Request.Context(), *cashierID, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Producto agregado al carrito", view)
}

// Scan handles barcode scans: first search hit goes straight into the cart
func (h *CheckoutHandler) Scan(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.Scan(c.Request.Context(), *cashierID, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Producto agregado al carrito", view)
}

// AdjustQuantity handles the +1/-1 buttons on a cart row
func (h *CheckoutHandler) AdjustQuantity(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.ChangeQuantity(*cashierID, productID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cantidad ajustada correctamente", view)
}

// SetSaleType handles switching between receipt and invoice
func (h *CheckoutHandler) SetSaleType(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.SaleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.SetSaleType(*cashierID, enum.SaleType(req.SaleType))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale type updated successfully", view)
}

// SetPaymentMethod handles switching the payment method
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.SetPaymentMethod(*cashierID, enum.PaymentMethod(req.PaymentMethod))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated successfully", view)
}

// SetAmountPaid handles edits to the paid field
func (h *CheckoutHandler) SetAmountPaid(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.AmountPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view := h.checkoutService.SetAmountPaid(*cashierID, req.Amount)
	response.OK(c, "Amount paid updated successfully", view)
}

// SetTransactionInfo handles the card/transfer auxiliary fields
func (h *CheckoutHandler) SetTransactionInfo(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.TransactionInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view := h.checkoutService.SetTransactionInfo(*cashierID, req.TransactionNumber, req.BankName)
	response.OK(c, "Transaction info updated successfully", view)
}

// Validate handles the pre-confirmation check the UI runs before showing
// the confirmation dialog
func (h *CheckoutHandler) Validate(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	if err := h.checkoutService.Validate(*cashierID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout listo para confirmar", nil)
}

// Confirm handles submitting the sale
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	result, err := h.checkoutService.Confirm(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compra confirmada con éxito", result)
}
