package buffer

import (
	"time"

	"wardsync/internal/domain"
)

// Buffer holds the editable, possibly-unsaved copy of the selected patient's
// orders. Insertion order is display order. Every operation is synchronous
// and local; the buffer never performs I/O. It is not safe for concurrent
// use on its own: the synchronization controller is its single writer.
type Buffer struct {
	orders []domain.Order
}

func New() *Buffer {
	return &Buffer{}
}

// Hydrate replaces the entire contents, wiping any unconfirmed local state
// from the previous selection.
func (b *Buffer) Hydrate(orders []domain.Order) {
	b.orders = make([]domain.Order, len(orders))
	copy(b.orders, orders)
}

// SetMessage stages a new message on an existing entry. Returns false when
// the id is not present.
func (b *Buffer) SetMessage(orderID, message string) bool {
	for i := range b.orders {
		if b.orders[i].InternalID == orderID {
			b.orders[i].Message = message
			return true
		}
	}
	return false
}

// Append adds a newly confirmed order at the end of the sequence.
func (b *Buffer) Append(order domain.Order) {
	b.orders = append(b.orders, order)
}

// Replace applies a server-confirmed update to the matching entry. A missing
// id is a no-op; under correct sequencing it does not occur.
func (b *Buffer) Replace(orderID, message string, updatedAt time.Time) bool {
	for i := range b.orders {
		if b.orders[i].InternalID == orderID {
			b.orders[i].Message = message
			b.orders[i].UpdatedAt = updatedAt
			return true
		}
	}
	return false
}

// Get returns a copy of the entry with the given id.
func (b *Buffer) Get(orderID string) (domain.Order, bool) {
	for _, o := range b.orders {
		if o.InternalID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Orders returns a copy of the current contents for rendering.
func (b *Buffer) Orders() []domain.Order {
	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Buffer) Len() int {
	return len(b.orders)
}
