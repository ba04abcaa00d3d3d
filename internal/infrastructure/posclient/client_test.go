package posclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcifuentes/caja-api/internal/domain/entity"
	"github.com/rcifuentes/caja-api/internal/domain/enum"
	"github.com/rcifuentes/caja-api/pkg/apperror"
)

func TestSearchProductsParsesDecimalPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashier/buscar-producto/", r.URL.Path)
		assert.Equal(t, "coca cola", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"productos":[{"id":3,"nombre":"Coca-Cola 1.5L","precio_venta":"1890.00"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	products, err := client.SearchProducts(context.Background(), "coca cola")
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, entity.Product{ID: 3, Name: "Coca-Cola 1.5L", SellPrice: 1890}, products[0])
}

func TestSearchProductsInvalidPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"productos":[{"id":3,"nombre":"Pan","precio_venta":"n/a"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	_, err := client.SearchProducts(context.Background(), "pan")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}

func TestAddToCartReturnsSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashier/agregar-al-carrito/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body["producto_id"])

		w.Write([]byte(`{"mensaje":"Producto agregado","carrito":[
			{"producto_id":7,"nombre":"Pan","precio":"990.00","cantidad":2}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	items, err := client.AddToCart(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, entity.LineItem{ProductID: 7, Name: "Pan", UnitPrice: 990, Quantity: 2}, items[0])
}

func TestAddToCartRemoteErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Stock insuficiente para este producto."}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	_, err := client.AddToCart(context.Background(), 7)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Stock insuficiente para este producto.", appErr.Message)
}

func TestConfirmSaleRequestShape(t *testing.T) {
	var got confirmSaleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashier/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"mensaje":"Venta registrada","reporte_url":"/cashier/reporte/15/"}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	result, err := client.ConfirmSale(context.Background(), &entity.SaleDraft{
		Items: []entity.LineItem{
			{ProductID: 7, Name: "Pan", UnitPrice: 990, Quantity: 2},
		},
		SaleType:          enum.SaleTypeReceipt,
		PaymentMethod:     enum.PaymentTransfer,
		AmountPaid:        1980,
		TransactionNumber: "TX-55",
		BankName:          "Banco Estado",
	})
	require.NoError(t, err)
	assert.Equal(t, "/cashier/reporte/15/", result.ReportURL)

	assert.Equal(t, "boleta", got.SaleType)
	assert.Equal(t, "transferencia", got.PaymentMethod)
	assert.Equal(t, int64(1980), got.AmountPaid)
	assert.Equal(t, "TX-55", got.TransactionNumber)
	assert.Equal(t, "Banco Estado", got.BankName)
	require.Len(t, got.Cart, 1)
	assert.Equal(t, saleItemPayload{ProductID: 7, Quantity: 2, UnitPrice: 990}, got.Cart[0])
}

func TestConfirmSaleUnsuccessfulAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"El producto 'Pan' no tiene suficiente stock."}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	_, err := client.ConfirmSale(context.Background(), &entity.SaleDraft{})
	require.Error(t, err)
	assert.Equal(t, "El producto 'Pan' no tiene suficiente stock.", apperror.GetAppError(err).Message)
}

func TestCloseTillReturnsTillID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashier/cerrar_caja/", r.URL.Path)
		w.Write([]byte(`{"success":true,"mensaje":"Caja cerrada","caja_id":12}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	closing, err := client.CloseTill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), closing.TillID)
}

func TestAuthorizationPrefersCashierToken(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		w.Write([]byte(`{"productos":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "service-token", time.Second)

	_, err := client.SearchProducts(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Bearer service-token", header)

	ctx := WithCashierToken(context.Background(), "cashier-token")
	_, err = client.SearchProducts(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Bearer cashier-token", header)
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, "", time.Second)
	err := client.ClearCart(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrNetwork))
}
