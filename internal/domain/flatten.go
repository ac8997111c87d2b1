package domain

import "iter"

// placedAtLayout renders the order placement date the way the mobile client
// displays it (month/day/year without zero padding).
const placedAtLayout = "1/2/2006"

// AllLineItems returns a lazy sequence over every (order, item) pair in
// (order index, item index) order, which is the chronological-then-line-item
// display order. The sequence is a pure function of its input: finite,
// restartable, and free of hidden state. Orders with empty item lists
// contribute nothing.
func AllLineItems(orders []Order) iter.Seq[OrderLineItem] {
	return func(yield func(OrderLineItem) bool) {
		for _, order := range orders {
			status := order.Status
			if status == "" {
				status = OrderStatusPending
			}
			placedAt := order.PlacedAt.Format(placedAtLayout)

			for _, item := range order.Items {
				line := OrderLineItem{
					OrderID:   order.OrderID,
					ProductID: item.ProductID,
					Name:      item.Name,
					Price:     item.Price,
					Quantity:  item.Quantity,
					ImageURL:  item.ImageURL,
					Status:    status,
					PlacedAt:  placedAt,
				}
				if !yield(line) {
					return
				}
			}
		}
	}
}

// FlattenOrders collects AllLineItems into a slice. An empty or nil input
// yields an empty slice, never an error.
func FlattenOrders(orders []Order) []OrderLineItem {
	lines := []OrderLineItem{}
	for line := range AllLineItems(orders) {
		lines = append(lines, line)
	}
	return lines
}
