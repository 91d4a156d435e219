package domain

import "time"

// Order is a free-text note attached to a patient. Message is the sole
// mutable field; UpdatedAt is server-assigned. An order created locally has
// no InternalID until its create commits.
type Order struct {
	InternalID string
	Message    string
	UpdatedAt  time.Time
}

// Persisted reports whether the order exists in the remote store.
func (o Order) Persisted() bool {
	return o.InternalID != ""
}

// OrderRecord is the store-side row for an order, carrying the audit fields
// the client never sees.
type OrderRecord struct {
	InternalID        string
	PatientExternalID string
	Message           string
	CreatedByUser     string
	UpdatedByUser     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
