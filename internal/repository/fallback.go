package repository

import "github.com/Aul-rhmn/merchant-order/internal/types"

// FallbackProducts is the fixed catalog served when the remote product API
// is unreachable or unusable. It also seeds the local stock ledger.
func FallbackProducts() []types.Product {
	return []types.Product{
		{ID: "1", Name: "Premium Laptop", Description: "High-performance laptop", Price: 15000000, Stock: 25},
		{ID: "2", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Price: 250000, Stock: 100},
		{ID: "3", Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard", Price: 1200000, Stock: 50},
		{ID: "4", Name: "4K Monitor", Description: "27-inch 4K UHD", Price: 4500000, Stock: 15},
		{ID: "5", Name: "USB-C Hub", Description: "Multi-port USB-C", Price: 800000, Stock: 75},
	}
}
