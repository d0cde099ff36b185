package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// FileBackend persists the order collection as a single JSON file, written
// atomically via rename. A missing or unparseable file loads as an empty
// collection.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load() ([]types.Order, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read order file: %w", err)
	}

	var orders []types.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("Order file %s is corrupt, starting empty: %v", b.path, err)
		return nil, nil
	}
	return orders, nil
}

func (b *FileBackend) Save(orders []types.Order) error {
	if orders == nil {
		orders = []types.Order{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	tmp := b.path + ".tmp"
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create order dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write order file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace order file: %w", err)
	}
	return nil
}
