// Package posclient implements the PosGateway against the sale service's
// cashier HTTP API.
package posclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rcifuentes/caja-api/internal/domain/entity"
	"github.com/rcifuentes/caja-api/internal/domain/gateway"
	"github.com/rcifuentes/caja-api/pkg/apperror"
)

// Client talks to the catalog/sale service. It forwards the cashier's own
// bearer token when one is on the context, falling back to the configured
// service token.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

var _ gateway.PosGateway = (*Client)(nil)

// New creates a client for the sale service at baseURL.
func New(baseURL, serviceToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type productPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	SellPrice string `json:"precio_venta"`
}

type searchResponse struct {
	Products []productPayload `json:"productos"`
}

type cartItemPayload struct {
	ProductID int64  `json:"producto_id"`
	Name      string `json:"nombre"`
	UnitPrice string `json:"precio"`
	Quantity  int    `json:"cantidad"`
}

type addToCartResponse struct {
	Message string            `json:"mensaje"`
	Cart    []cartItemPayload `json:"carrito"`
}

type saleItemPayload struct {
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
	UnitPrice int64 `json:"precio"`
}

type confirmSaleRequest struct {
	Cart              []saleItemPayload `json:"carrito"`
	SaleType          string            `json:"tipo_venta"`
	PaymentMethod     string            `json:"forma_pago"`
	AmountPaid        int64             `json:"cliente_paga"`
	TransactionNumber string            `json:"numero_transaccion"`
	BankName          string            `json:"banco"`
}

type confirmSaleResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"mensaje"`
	ReportURL string `json:"reporte_url"`
	Err       string `json:"error"`
}

type closeTillResponse struct {
	Success bool   `json:"success"`
	Message string `json:"mensaje"`
	TillID  int64  `json:"caja_id"`
	Err     string `json:"error"`
}

// SearchProducts looks products up by name or code.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	endpoint := c.baseURL + "/cashier/buscar-producto/?q=" + url.QueryEscape(query)

	var payload searchResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		price, err := parsePesos(p.SellPrice)
		if err != nil {
			return nil, apperror.NewRemoteError(http.StatusBadGateway,
				fmt.Sprintf("El servicio de ventas devolvió un precio inválido para %q.", p.Name))
		}
		products = append(products, entity.Product{
			ID:        p.ID,
			Name:      p.Name,
			SellPrice: price,
		})
	}
	return products, nil
}

// AddToCart adds one unit of the product to the session cart and returns the
// updated server-side snapshot.
func (c *Client) AddToCart(ctx context.Context, productID int64) ([]entity.LineItem, error) {
	body := map[string]int64{"producto_id": productID}

	var payload addToCartResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/cashier/agregar-al-carrito/", body, &payload); err != nil {
		return nil, err
	}

	items := make([]entity.LineItem, 0, len(payload.Cart))
	for _, item := range payload.Cart {
		price, err := parsePesos(item.UnitPrice)
		if err != nil {
			return nil, apperror.NewRemoteError(http.StatusBadGateway,
				fmt.Sprintf("El servicio de ventas devolvió un precio inválido para %q.", item.Name))
		}
		items = append(items, entity.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}

// ConfirmSale submits the draft. An answer without success=true is surfaced
// as a remote error with the service's message.
func (c *Client) ConfirmSale(ctx context.Context, draft *entity.SaleDraft) (*gateway.SaleResult, error) {
	items := make([]saleItemPayload, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, saleItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	body := confirmSaleRequest{
		Cart:              items,
		SaleType:          string(draft.SaleType),
		PaymentMethod:     string(draft.PaymentMethod),
		AmountPaid:        draft.AmountPaid,
		TransactionNumber: draft.TransactionNumber,
		BankName:          draft.BankName,
	}

	var payload confirmSaleResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/cashier/", body, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, apperror.NewRemoteError(http.StatusBadGateway, payload.Err)
	}

	return &gateway.SaleResult{ReportURL: payload.ReportURL}, nil
}

// ClearCart empties the session cart on the service side.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/cashier/limpiar_carrito/", nil, nil)
}

// CloseTill closes the cashier's open till.
func (c *Client) CloseTill(ctx context.Context) (*gateway.TillClosing, error) {
	var payload closeTillResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/cashier/cerrar_caja/", nil, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, apperror.NewRemoteError(http.StatusBadGateway, payload.Err)
	}

	return &gateway.TillClosing{TillID: payload.TillID}, nil
}

// do runs one JSON round trip. Transport failures map to ErrNetwork;
// non-2xx answers map to a remote error carrying the service's message.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := CashierTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.ErrNetwork
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.ErrNetwork
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.NewRemoteError(resp.StatusCode, remoteMessage(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperror.NewRemoteError(http.StatusBadGateway, "El servicio de ventas devolvió una respuesta inválida.")
	}
	return nil
}

// remoteMessage extracts the human-readable error the sale service puts in
// its error payloads.
func remoteMessage(data []byte) string {
	var payload struct {
		Err string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Err
}

// parsePesos converts the service's decimal price strings to whole pesos.
// Fractions are truncated, matching the zero-decimal display policy.
func parsePesos(s string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
