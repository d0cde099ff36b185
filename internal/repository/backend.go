package repository

import "github.com/Aul-rhmn/merchant-order/internal/types"

// PersistenceBackend stores the whole order collection as one ordered blob,
// mirroring the single-key client storage this service replaces. Load treats
// missing or corrupt state as an empty collection, never as a failure.
type PersistenceBackend interface {
	Load() ([]types.Order, error)
	Save(orders []types.Order) error
}
