package repository

import (
	"fmt"
	"sync"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// CatalogStore owns the local product catalog and its stock ledger. Every
// mutation runs under one lock so concurrent order commits and deletions
// cannot interleave into negative or double-counted stock.
type CatalogStore struct {
	mu       sync.Mutex
	products []types.Product
	index    map[string]int
}

func NewCatalogStore(products []types.Product) *CatalogStore {
	s := &CatalogStore{
		products: make([]types.Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	return s
}

// Snapshot returns a defensive copy of the catalog in its fixed order.
func (s *CatalogStore) Snapshot() []types.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *CatalogStore) Get(productID string) (types.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return types.Product{}, false
	}
	return s.products[i], true
}

// Reserve decrements stock for one committed line. Products outside the
// local ledger (remote-only items) carry no stock here and are skipped, the
// same way Release skips them. Stock never goes negative: a decrement that
// would cross zero is refused, not clamped.
func (s *CatalogStore) Reserve(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return nil
	}
	if quantity > s.products[i].Stock {
		return fmt.Errorf("product %s: %d available, %d requested: %w",
			productID, s.products[i].Stock, quantity, domain.ErrInsufficientStock)
	}
	s.products[i].Stock -= quantity
	return nil
}

// Release returns previously reserved stock on order deletion. Released
// quantities always originate from a reservation, so there is nothing to
// clamp; unknown products are ignored.
func (s *CatalogStore) Release(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[productID]; ok {
		s.products[i].Stock += quantity
	}
}
