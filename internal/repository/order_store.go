package repository

import (
	"fmt"
	"sync"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// OrderStore owns the committed order collection. Creation reserves stock
// for every line before the order is persisted and deletion releases it
// again, both inside one critical section so the catalog and the order list
// can never disagree.
type OrderStore struct {
	mu      sync.Mutex
	catalog *CatalogStore
	backend PersistenceBackend
	orders  []types.Order
	seen    map[string]struct{}
}

func NewOrderStore(catalog *CatalogStore, backend PersistenceBackend) (*OrderStore, error) {
	orders, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load persisted orders: %w", err)
	}

	s := &OrderStore{
		catalog: catalog,
		backend: backend,
		orders:  orders,
		seen:    make(map[string]struct{}),
	}
	for _, order := range orders {
		s.seen[order.ID] = struct{}{}
		for _, item := range order.Items {
			s.seen[item.ID] = struct{}{}
		}
	}
	return s, nil
}

// Create persists the order and reserves stock for every line. Reservation
// is all-or-nothing: the first failing line rolls back the ones already
// taken and nothing is stored. Id collisions are invariant violations and
// are never overwritten.
func (s *OrderStore) Create(order types.Order) (types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(order.Items) == 0 {
		return types.Order{}, domain.ErrEmptyOrder
	}
	if err := s.checkIDs(order); err != nil {
		return types.Order{}, err
	}

	var reserved []types.OrderItem
	rollback := func() {
		for _, item := range reserved {
			s.catalog.Release(item.ProductID, item.Quantity)
		}
	}

	for _, item := range order.Items {
		if err := s.catalog.Reserve(item.ProductID, item.Quantity); err != nil {
			rollback()
			return types.Order{}, err
		}
		reserved = append(reserved, item)
	}

	next := append(cloneOrders(s.orders), order.Clone())
	if err := s.backend.Save(next); err != nil {
		rollback()
		return types.Order{}, fmt.Errorf("persist order: %w", err)
	}

	s.orders = next
	s.seen[order.ID] = struct{}{}
	for _, item := range order.Items {
		s.seen[item.ID] = struct{}{}
	}
	return order.Clone(), nil
}

// List returns all orders in insertion order as a defensive copy.
func (s *OrderStore) List() []types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

func (s *OrderStore) Get(orderID string) (types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == orderID {
			return order.Clone(), nil
		}
	}
	return types.Order{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
}

// Delete removes the order and releases the stock of every line. An unknown
// id returns false with no state change. Removal and release happen in the
// same critical section; a failed persist leaves both untouched.
func (s *OrderStore) Delete(orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := -1
	for i, order := range s.orders {
		if order.ID == orderID {
			at = i
			break
		}
	}
	if at == -1 {
		return false, nil
	}

	deleted := s.orders[at]
	next := make([]types.Order, 0, len(s.orders)-1)
	next = append(next, s.orders[:at]...)
	next = append(next, s.orders[at+1:]...)
	next = cloneOrders(next)

	if err := s.backend.Save(next); err != nil {
		return false, fmt.Errorf("persist order removal: %w", err)
	}

	for _, item := range deleted.Items {
		s.catalog.Release(item.ProductID, item.Quantity)
	}
	s.orders = next
	return true, nil
}

func (s *OrderStore) checkIDs(order types.Order) error {
	if _, dup := s.seen[order.ID]; dup {
		return fmt.Errorf("order id %s already used", order.ID)
	}
	for _, item := range order.Items {
		if _, dup := s.seen[item.ID]; dup {
			return fmt.Errorf("order item id %s already used", item.ID)
		}
	}
	return nil
}
