package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aul-rhmn/merchant-order/internal/repository"
	"github.com/Aul-rhmn/merchant-order/internal/service"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

type offlineProbe struct{}

func (offlineProbe) IsReachable(context.Context) bool { return false }

type noRemote struct{}

func (noRemote) ListProducts(context.Context) ([]types.Product, error) { return nil, nil }

func newTestApp(t *testing.T) (*fiber.App, *repository.CatalogStore) {
	t.Helper()

	catalog := repository.NewCatalogStore([]types.Product{
		{ID: "1", Name: "Premium Laptop", Description: "High-performance laptop", Price: 150000, Stock: 50},
	})
	store, err := repository.NewOrderStore(catalog, repository.NewMemoryBackend(nil))
	require.NoError(t, err)

	productHandler := NewProductHandler(service.NewProductService(catalog, noRemote{}, offlineProbe{}))
	orderHandler := NewOrderHandler(service.NewOrderService(store, nil))

	app := fiber.New()
	app.Get("/products", productHandler.ListProducts)
	app.Get("/products/status", productHandler.GetSourceStatus)
	app.Get("/orders", orderHandler.ListOrders)
	app.Post("/orders", orderHandler.CreateOrder)
	app.Get("/orders/:id", orderHandler.GetOrderByID)
	app.Delete("/orders/:id", orderHandler.DeleteOrder)
	return app, catalog
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func createBody(qty int) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{{
			"productId":   "1",
			"productName": "Premium Laptop - High-performance laptop",
			"quantity":    qty,
			"unitPrice":   150000,
			"totalPrice":  qty * 150000,
		}},
		"totalAmount": qty * 150000,
	}
}

func TestGetProducts_ServesFallbackWhenOffline(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := do(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var products []types.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, 50, products[0].Stock)
}

func TestGetProductStatus_Offline(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := do(t, app, http.MethodGet, "/products/status", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status service.SourceStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.False(t, status.Connected)
	assert.Equal(t, "Mock Data", status.Source)
}

func TestCreateOrder_FullLifecycle(t *testing.T) {
	app, catalog := newTestApp(t)

	// create: total recomputed from lines, stock decremented
	resp, env := do(t, app, http.MethodPost, "/orders", createBody(2))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var order types.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, int64(300000), order.TotalAmount)
	assert.Equal(t, types.OrderStatusPending, order.Status)

	p, _ := catalog.Get("1")
	assert.Equal(t, 48, p.Stock)

	// the order is listed and fetchable
	resp, env = do(t, app, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []types.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)

	resp, _ = do(t, app, http.MethodGet, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// delete: stock restored, order gone
	resp, env = do(t, app, http.MethodDelete, "/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	p, _ = catalog.Get("1")
	assert.Equal(t, 50, p.Stock)

	_, env = do(t, app, http.MethodGet, "/orders", nil)
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Empty(t, orders)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := do(t, app, http.MethodPost, "/orders", map[string]interface{}{
		"items":       []interface{}{},
		"totalAmount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestCreateOrder_MissingItems(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := do(t, app, http.MethodPost, "/orders", map[string]interface{}{"totalAmount": 100})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	app, catalog := newTestApp(t)

	resp, env := do(t, app, http.MethodPost, "/orders", createBody(51))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)

	p, _ := catalog.Get("1")
	assert.Equal(t, 50, p.Stock, "rejected order must not touch stock")
}

func TestGetOrder_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := do(t, app, http.MethodGet, "/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	app, catalog := newTestApp(t)

	resp, env := do(t, app, http.MethodDelete, "/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)

	p, _ := catalog.Get("1")
	assert.Equal(t, 50, p.Stock)
}
