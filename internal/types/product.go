package types

// Product is a catalog entry. Price is in minor currency units. Stock is
// mutated only through the catalog store's reserve/release operations.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}
