// internal/domain/recommendation.go
package domain

import (
	"fmt"
	"sort"
)

// Recommendation maps supplier name to product name to a recommended
// order quantity. Quantities are always positive: a product whose
// computed quantity is zero is simply absent, and a supplier with no
// products left has no entry at all.
type Recommendation map[string]map[string]int

// Set places a quantity under a supplier, creating the supplier entry on
// first use. Zero or negative quantities are ignored.
func (r Recommendation) Set(supplier, product string, qty int) {
	if qty <= 0 {
		return
	}
	items, ok := r[supplier]
	if !ok {
		items = make(map[string]int)
		r[supplier] = items
	}
	items[product] = qty
}

// ApplyEdit sets the quantity for an existing entry. A quantity of zero
// deletes the product; if that empties the supplier's order, the supplier
// entry is deleted too. Editing never introduces new entries, so applying
// the same edit twice leaves the same state as applying it once.
func (r Recommendation) ApplyEdit(supplier, product string, qty int) error {
	items, ok := r[supplier]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSupplier, supplier)
	}
	if _, ok := items[product]; !ok {
		return fmt.Errorf("%w: %s (%s)", ErrUnknownProduct, product, supplier)
	}
	if qty <= 0 {
		delete(items, product)
		if len(items) == 0 {
			delete(r, supplier)
		}
		return nil
	}
	items[product] = qty
	return nil
}

// Clone deep-copies the recommendation so a session can edit it without
// touching the caller's copy.
func (r Recommendation) Clone() Recommendation {
	out := make(Recommendation, len(r))
	for supplier, items := range r {
		cp := make(map[string]int, len(items))
		for product, qty := range items {
			cp[product] = qty
		}
		out[supplier] = cp
	}
	return out
}

// Suppliers returns supplier names in stable order.
func (r Recommendation) Suppliers() []string {
	names := make([]string, 0, len(r))
	for s := range r {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// ItemCount is the number of distinct products under a supplier.
func (r Recommendation) ItemCount(supplier string) int {
	return len(r[supplier])
}

// TotalQuantity sums the quantities under a supplier.
func (r Recommendation) TotalQuantity(supplier string) int {
	total := 0
	for _, qty := range r[supplier] {
		total += qty
	}
	return total
}

// IsEmpty reports whether no supplier has any recommended product.
func (r Recommendation) IsEmpty() bool {
	return len(r) == 0
}
