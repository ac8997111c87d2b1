package domain

import (
	"time"

	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// DraftItem is a point-in-time snapshot of a cart line item inside an order draft.
type DraftItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// OrderDraft is the immutable order-submission payload materialized from the
// cart at checkout. Quantities are taken at build time and never re-read; the
// draft is submitted once and discarded whether submission succeeds or fails.
type OrderDraft struct {
	Items          []DraftItem `json:"items"`
	SubtotalAmount int64       `json:"subtotal_amount"`
	DeliveryFee    int64       `json:"delivery_fee"`
	TotalAmount    int64       `json:"total_amount"`
	Currency       string      `json:"currency"`
	CreatedAt      time.Time   `json:"created_at"`
}

// BuildDraft snapshots the cart and its ledger into an order draft.
// The cart and ledger are left untouched; clearing the cart is a separate
// action the caller performs only after the order API reports success.
// An empty cart fails with EmptyCart.
func BuildDraft(cart *Cart, deliveryFee int64) (*OrderDraft, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperrors.EmptyCart()
	}

	items := make([]DraftItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = DraftItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
	}

	subtotal := cart.Ledger.Total

	return &OrderDraft{
		Items:          items,
		SubtotalAmount: subtotal,
		DeliveryFee:    deliveryFee,
		TotalAmount:    subtotal + deliveryFee,
		Currency:       cart.Currency,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// FormattedTotal returns the payable total as a 2-decimal string ("310.00").
func (d *OrderDraft) FormattedTotal() string {
	return FormatAmount(d.TotalAmount)
}
