package repository

import (
	"sync"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// MemoryBackend keeps the order collection in process memory. The default
// backend for tests and for running without any storage configured.
type MemoryBackend struct {
	mu     sync.Mutex
	orders []types.Order
}

func NewMemoryBackend(seed []types.Order) *MemoryBackend {
	b := &MemoryBackend{}
	b.orders = cloneOrders(seed)
	return b
}

func (b *MemoryBackend) Load() ([]types.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneOrders(b.orders), nil
}

func (b *MemoryBackend) Save(orders []types.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = cloneOrders(orders)
	return nil
}

func cloneOrders(orders []types.Order) []types.Order {
	out := make([]types.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
