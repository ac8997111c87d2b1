package domain

import "time"

// Order status constants. The order API defaults new orders to pending.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// Order is a historical order record as returned by the order-history API.
// It is read-only to this service.
type Order struct {
	OrderID     string      `json:"order_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount int64       `json:"total_amount"`
	Status      string      `json:"status"`
	PlacedAt    time.Time   `json:"placed_at"`
}

// OrderItem is a line item of a placed order, as placed.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// OrderLineItem is one flattened (order, item) pair, ready for display:
// the item's own fields plus the denormalized order ID and a human-formatted
// placement date.
type OrderLineItem struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
	Status    string `json:"status"`
	PlacedAt  string `json:"placed_at"`
}
