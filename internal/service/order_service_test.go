package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/repository"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

type recordingPublisher struct {
	created []types.Order
	deleted []types.Order
}

func (p *recordingPublisher) PublishOrderCreated(order types.Order) error {
	p.created = append(p.created, order)
	return nil
}

func (p *recordingPublisher) PublishOrderDeleted(order types.Order) error {
	p.deleted = append(p.deleted, order)
	return nil
}

func newOrderService(t *testing.T) (*OrderService, *repository.CatalogStore, *recordingPublisher) {
	t.Helper()
	catalog := repository.NewCatalogStore([]types.Product{
		{ID: "1", Name: "Premium Laptop", Description: "High-performance laptop", Price: 150000, Stock: 50},
	})
	store, err := repository.NewOrderStore(catalog, repository.NewMemoryBackend(nil))
	require.NoError(t, err)
	events := &recordingPublisher{}
	return NewOrderService(store, events), catalog, events
}

func request(qty int) domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Items: []domain.OrderItemRequest{{
			ProductID:   "1",
			ProductName: "Premium Laptop - High-performance laptop",
			Quantity:    qty,
			UnitPrice:   150000,
			TotalPrice:  int64(qty) * 150000,
		}},
		TotalAmount: int64(qty) * 150000,
	}
}

func TestCreateOrder_CommitsAndReservesStock(t *testing.T) {
	s, catalog, events := newOrderService(t)

	order, err := s.CreateOrder(request(2))
	require.NoError(t, err)

	assert.Equal(t, int64(300000), order.TotalAmount)
	assert.Equal(t, types.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.ID)

	p, _ := catalog.Get("1")
	assert.Equal(t, 48, p.Stock)
	require.Len(t, events.created, 1)
	assert.Equal(t, order.ID, events.created[0].ID)
}

func TestCreateOrder_RecomputesTotal(t *testing.T) {
	s, _, _ := newOrderService(t)

	req := request(2)
	req.TotalAmount = 1 // client lies; committed total comes from the lines

	order, err := s.CreateOrder(req)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), order.TotalAmount)
}

func TestCreateOrder_EmptyRequest(t *testing.T) {
	s, _, events := newOrderService(t)

	_, err := s.CreateOrder(domain.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Empty(t, events.created)
	assert.Empty(t, s.ListOrders())
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	s, catalog, _ := newOrderService(t)

	_, err := s.CreateOrder(request(0))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	p, _ := catalog.Get("1")
	assert.Equal(t, 50, p.Stock)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	s, catalog, _ := newOrderService(t)

	_, err := s.CreateOrder(request(51))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := catalog.Get("1")
	assert.Equal(t, 50, p.Stock)
	assert.Empty(t, s.ListOrders())
}

func TestDeleteOrder_RoundTripRestoresStock(t *testing.T) {
	s, catalog, events := newOrderService(t)

	order, err := s.CreateOrder(request(2))
	require.NoError(t, err)

	deleted, err := s.DeleteOrder(order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	p, _ := catalog.Get("1")
	assert.Equal(t, 50, p.Stock)
	assert.Empty(t, s.ListOrders())
	require.Len(t, events.deleted, 1)
	assert.Equal(t, order.ID, events.deleted[0].ID)
}

func TestDeleteOrder_UnknownID(t *testing.T) {
	s, _, events := newOrderService(t)

	deleted, err := s.DeleteOrder("nope")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, events.deleted)
}

func TestGetOrder(t *testing.T) {
	s, _, _ := newOrderService(t)

	order, err := s.CreateOrder(request(1))
	require.NoError(t, err)

	got, err := s.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = s.GetOrder("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
