package types

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is immutable after creation: there is no line-item edit, only
// whole-order deletion. TotalAmount always equals the sum of the line totals.
type Order struct {
	ID          string      `json:"id"`
	Items       []OrderItem `json:"items"`
	TotalAmount int64       `json:"totalAmount"`
	CreatedAt   string      `json:"createdAt"`
	Status      OrderStatus `json:"status"`
}

// OrderItem carries a frozen snapshot of the product's name and price taken
// when the line was added; later catalog changes never reach stored orders.
type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

// Clone returns a deep copy so callers cannot reach into stored state.
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
