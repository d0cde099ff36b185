// Package cart accumulates order lines in memory before commit. The builder
// is pure: it works on a catalog snapshot and never mutates its inputs, so
// stock checks here are advisory only. The catalog store enforces them again
// when the order commits.
package cart

import (
	"fmt"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/types"
)

type Builder struct {
	catalog map[string]types.Product
}

func NewBuilder(products []types.Product) *Builder {
	catalog := make(map[string]types.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return &Builder{catalog: catalog}
}

func (b *Builder) product(productID string) (types.Product, error) {
	p, ok := b.catalog[productID]
	if !ok {
		return types.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

// AddItem appends quantity of the product to the cart. A line for the same
// product is merged instead of duplicated, with the merged quantity checked
// against stock as a whole. On error the input lines are returned untouched.
func (b *Builder) AddItem(items []types.OrderItem, productID string, quantity int) ([]types.OrderItem, error) {
	if quantity <= 0 {
		return items, domain.ErrInvalidQuantity
	}
	product, err := b.product(productID)
	if err != nil {
		return items, err
	}

	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		merged := item.Quantity + quantity
		if merged > product.Stock {
			return items, insufficientStock(productID, product.Stock, merged)
		}
		next := cloneItems(items)
		next[i].Quantity = merged
		next[i].TotalPrice = int64(merged) * next[i].UnitPrice
		return next, nil
	}

	if quantity > product.Stock {
		return items, insufficientStock(productID, product.Stock, quantity)
	}

	next := cloneItems(items)
	return append(next, types.OrderItem{
		ProductID:   productID,
		ProductName: product.Name + " - " + product.Description,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		TotalPrice:  int64(quantity) * product.Price,
	}), nil
}

// SetQuantity replaces the quantity of an existing line. Zero or negative
// quantities remove the line, same as RemoveItem.
func (b *Builder) SetQuantity(items []types.OrderItem, productID string, quantity int) ([]types.OrderItem, error) {
	if quantity <= 0 {
		return b.RemoveItem(items, productID), nil
	}
	product, err := b.product(productID)
	if err != nil {
		return items, err
	}
	if quantity > product.Stock {
		return items, insufficientStock(productID, product.Stock, quantity)
	}

	next := cloneItems(items)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = quantity
			next[i].TotalPrice = int64(quantity) * next[i].UnitPrice
		}
	}
	return next, nil
}

// RemoveItem drops the line for the product. Removing an absent product is a
// no-op, not an error.
func (b *Builder) RemoveItem(items []types.OrderItem, productID string) []types.OrderItem {
	next := make([]types.OrderItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next
}

// Commit turns the accumulated lines into an order construction request.
func (b *Builder) Commit(items []types.OrderItem) (types.Order, error) {
	return domain.NewOrder(items)
}

// Total sums the line totals; an empty cart totals zero.
func Total(items []types.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.TotalPrice
	}
	return total
}

func cloneItems(items []types.OrderItem) []types.OrderItem {
	next := make([]types.OrderItem, len(items))
	copy(next, items)
	return next
}

func insufficientStock(productID string, available, requested int) error {
	return fmt.Errorf("product %s: %d available, %d requested: %w",
		productID, available, requested, domain.ErrInsufficientStock)
}
