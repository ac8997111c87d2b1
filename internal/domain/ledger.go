package domain

// DeltaKind identifies the kind of price adjustment a line-item control reports.
type DeltaKind string

const (
	// DeltaMount is the initial price contribution of a newly added item,
	// raised exactly once per item instance.
	DeltaMount DeltaKind = "mount"
	// DeltaIncrement is raised when an item's quantity goes up by one.
	DeltaIncrement DeltaKind = "increment"
	// DeltaDecrement is raised when an item's quantity goes down by one
	// (only valid while quantity > 1).
	DeltaDecrement DeltaKind = "decrement"
	// DeltaRemove zeroes an item's remaining contribution when it leaves the cart.
	DeltaRemove DeltaKind = "remove"
)

// Ledger is the running cart total, maintained through signed commutative
// deltas reported by individual line items. It is never re-scanned from the
// item list during normal operation; Recompute is the explicit recovery path.
//
// Invariant (once all deltas for an operation have been applied):
//
//	Total == sum over items of Price * Quantity
//
// Mounted tracks which item instances have already contributed their initial
// price. Keying the mount on item identity rather than on any notion of
// render or call count is what guarantees exactly-once semantics: a repeated
// mount for the same product is dropped instead of double-counting.
type Ledger struct {
	Total   int64           `json:"total"`
	Mounted map[string]bool `json:"mounted,omitempty"`
}

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return Ledger{Mounted: make(map[string]bool)}
}

// Mount applies the one-time initial price delta for the given product.
// Returns false without touching the total if the product already mounted.
func (l *Ledger) Mount(productID string, price int64) bool {
	if l.Mounted == nil {
		l.Mounted = make(map[string]bool)
	}
	if l.Mounted[productID] {
		return false
	}
	l.Mounted[productID] = true
	l.Total += price
	return true
}

// Apply adds a signed delta to the total.
func (l *Ledger) Apply(amount int64) {
	l.Total += amount
}

// Unmount removes the item's remaining contribution and clears its mount
// flag, so a future re-add of the same product mounts fresh.
func (l *Ledger) Unmount(productID string, price int64, quantity int) {
	if l.Mounted == nil || !l.Mounted[productID] {
		return
	}
	delete(l.Mounted, productID)
	l.Total -= price * int64(quantity)
}

// Recompute rebuilds the total from a full scan of the given items. It is the
// recovery path of the delta protocol and must reproduce exactly the value
// correct delta accumulation would have produced.
func (l *Ledger) Recompute(items []CartItem) {
	mounted := make(map[string]bool, len(items))
	var total int64
	for _, item := range items {
		mounted[item.ProductID] = true
		total += item.Price * int64(item.Quantity)
	}
	l.Total = total
	l.Mounted = mounted
}

// Reset zeroes the ledger.
func (l *Ledger) Reset() {
	l.Total = 0
	l.Mounted = make(map[string]bool)
}
