package domain

import (
	"time"

	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// CartItem represents a single line item in the cart. Price is in minor
// currency units (paise).
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// LineTotal returns the item's contribution to the cart total.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is the single-owner state container for a user's cart: the item store
// plus its price ledger. All mutation goes through the methods below, each of
// which applies the store change and the matching ledger delta in one
// synchronous call, so no reader can observe one without the other.
//
// Invariants: each ProductID appears at most once; every Quantity >= 1 (an
// item reaching zero is removed, never retained); after any operation
// Ledger.Total equals the sum of Price * Quantity over Items.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Ledger    Ledger     `json:"ledger"`
	Currency  string     `json:"currency"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// findItem returns the index of the item with the given product ID, or -1.
func (c *Cart) findItem(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Item returns a copy of the item with the given product ID.
func (c *Cart) Item(productID string) (CartItem, bool) {
	if i := c.findItem(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// AddItem inserts the item with quantity 1 and applies its mount delta to the
// ledger. Adding a product already in the cart is an idempotent no-op; the
// caller decides whether to route a re-add to a quantity increment instead.
// The incoming quantity is always forced to 1 so the mount delta is always
// exactly the unit price.
func (c *Cart) AddItem(item CartItem) bool {
	if c.findItem(item.ProductID) >= 0 {
		return false
	}

	item.Quantity = 1
	c.Items = append(c.Items, item)
	c.Ledger.Mount(item.ProductID, item.Price)
	return true
}

// SetQuantity sets the quantity of an existing item. Quantities below one are
// rejected; removal must go through RemoveItem instead. The signed ledger
// delta price * (newQuantity - oldQuantity) and the quantity write happen in
// the same synchronous call.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return apperrors.InvalidQuantity("quantity must be at least 1; remove the item instead")
	}

	i := c.findItem(productID)
	if i < 0 {
		return apperrors.NotFound("cart item", productID)
	}

	item := &c.Items[i]
	c.Ledger.Apply(item.Price * int64(quantity-item.Quantity))
	item.Quantity = quantity
	return nil
}

// RemoveItem deletes the item and subtracts its full remaining contribution
// from the ledger as one atomic pair. Removing an unknown product is a no-op,
// tolerating duplicate dispatches.
func (c *Cart) RemoveItem(productID string) bool {
	i := c.findItem(productID)
	if i < 0 {
		return false
	}

	item := c.Items[i]
	c.Ledger.Unmount(item.ProductID, item.Price, item.Quantity)
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Reset clears all items and the ledger, used after a confirmed order placement.
func (c *Cart) Reset() {
	c.Items = []CartItem{}
	c.Ledger.Reset()
}

// Subtotal computes the total from a full item scan. It must always agree
// with Ledger.Total; the ledger consistency tests assert exactly that.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].LineTotal()
	}
	return total
}

// ItemCount returns the total number of units across all items.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// RecomputeLedger rebuilds the ledger from the item store (recovery path).
func (c *Cart) RecomputeLedger() {
	c.Ledger.Recompute(c.Items)
}
