package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// PostgresBackend persists each order as a JSON payload row keyed by
// position, so Load reproduces insertion order exactly. Save rewrites the
// whole collection in one transaction, which keeps the backend's contract
// identical to the blob backends.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// EnsureSchema creates the orders table if it does not exist yet.
func (b *PostgresBackend) EnsureSchema() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS merchant_orders (
			position INTEGER PRIMARY KEY,
			order_id TEXT NOT NULL UNIQUE,
			payload  JSONB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure orders schema: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load() ([]types.Order, error) {
	rows, err := b.db.Query(`SELECT payload FROM merchant_orders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer rows.Close()

	var orders []types.Order
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		var order types.Order
		if err := json.Unmarshal(payload, &order); err != nil {
			// Corrupt stored state recovers as an empty collection.
			log.Printf("Stored order payload is corrupt, starting empty: %v", err)
			return nil, nil
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

func (b *PostgresBackend) Save(orders []types.Order) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM merchant_orders`); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}

	for i, order := range orders {
		payload, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("order serialization error: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO merchant_orders (position, order_id, payload) VALUES ($1, $2, $3)`,
			i, order.ID, payload,
		)
		if err != nil {
			return fmt.Errorf("insert order %s: %w", order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
