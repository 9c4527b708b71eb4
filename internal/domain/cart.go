package domain

// Cart maps product ids to requested quantities. An absent key means zero.
// A cart is owned by exactly one session and is advisory until checkout;
// nothing is reserved by adding to it.
type Cart map[string]int

// Add applies delta to the quantity for pid, clamping at zero. A quantity
// that reaches zero removes the key entirely. Returns the new quantity.
func (c Cart) Add(pid string, delta int) int {
	qty := c[pid] + delta
	if qty <= 0 {
		delete(c, pid)
		return 0
	}
	c[pid] = qty
	return qty
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for pid, qty := range c {
		out[pid] = qty
	}
	return out
}
