package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

// NewOrder freezes a finalized cart into an immutable order record. Every
// line gets a fresh id and its total is recomputed from quantity and unit
// price, so the stored invariants cannot depend on what the caller sent.
func NewOrder(items []types.OrderItem) (types.Order, error) {
	if len(items) == 0 {
		return types.Order{}, ErrEmptyOrder
	}

	frozen := make([]types.OrderItem, len(items))
	var total int64
	for i, item := range items {
		item.ID = uuid.NewString()
		item.TotalPrice = int64(item.Quantity) * item.UnitPrice
		frozen[i] = item
		total += item.TotalPrice
	}

	return types.Order{
		ID:          uuid.NewString(),
		Items:       frozen,
		TotalAmount: total,
		CreatedAt:   time.Now().Format("2006-01-02"),
		Status:      types.OrderStatusPending,
	}, nil
}

type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	TotalAmount int64              `json:"totalAmount"`
}

type OrderItemRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

// Validate rejects requests the builder could never have produced.
func (r CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			return ErrNotFound
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// ToOrderItems converts to the domain model.
func (r CreateOrderRequest) ToOrderItems() []types.OrderItem {
	items := make([]types.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = types.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	return items
}
