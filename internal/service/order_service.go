package service

import (
	"log"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/repository"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// EventPublisher notifies downstream consumers about order lifecycle
// changes. Publishing is best-effort: failures are logged, never surfaced.
type EventPublisher interface {
	PublishOrderCreated(order types.Order) error
	PublishOrderDeleted(order types.Order) error
}

type OrderService struct {
	orders *repository.OrderStore
	events EventPublisher
}

// NewOrderService wires the order store and an optional event publisher; a
// nil publisher disables events.
func NewOrderService(orders *repository.OrderStore, events EventPublisher) *OrderService {
	return &OrderService{
		orders: orders,
		events: events,
	}
}

// CreateOrder freezes the requested lines into an order and commits it. The
// request's totalAmount is advisory only: the committed total is recomputed
// from the lines so the invariant holds regardless of the client.
func (s *OrderService) CreateOrder(request domain.CreateOrderRequest) (types.Order, error) {
	if err := request.Validate(); err != nil {
		return types.Order{}, err
	}

	order, err := domain.NewOrder(request.ToOrderItems())
	if err != nil {
		return types.Order{}, err
	}
	if request.TotalAmount != order.TotalAmount {
		log.Printf("Order %s: client total %d differs from computed %d, using computed",
			order.ID, request.TotalAmount, order.TotalAmount)
	}

	created, err := s.orders.Create(order)
	if err != nil {
		return types.Order{}, err
	}

	log.Printf("Order created: OrderID=%s, Items=%d, Amount=%d",
		created.ID, len(created.Items), created.TotalAmount)

	if s.events != nil {
		if err := s.events.PublishOrderCreated(created); err != nil {
			log.Printf("Order created event publish failed: %v", err)
		}
	}
	return created, nil
}

func (s *OrderService) ListOrders() []types.Order {
	return s.orders.List()
}

func (s *OrderService) GetOrder(orderID string) (types.Order, error) {
	return s.orders.Get(orderID)
}

// DeleteOrder removes the order and restores its stock. Unknown ids report
// false without touching any state.
func (s *OrderService) DeleteOrder(orderID string) (bool, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return false, nil
	}

	deleted, err := s.orders.Delete(orderID)
	if err != nil || !deleted {
		return deleted, err
	}

	log.Printf("Order deleted: OrderID=%s, stock restored for %d lines",
		orderID, len(order.Items))

	if s.events != nil {
		if err := s.events.PublishOrderDeleted(order); err != nil {
			log.Printf("Order deleted event publish failed: %v", err)
		}
	}
	return true, nil
}
