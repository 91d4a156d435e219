package domain

import "time"

// Patient is fetched from the remote store and never mutated client-side.
// InternalID is the store-assigned identity; ExternalID is the domain-facing
// identifier used as the foreign key when creating orders.
type Patient struct {
	InternalID    string
	ExternalID    string
	Name          string
	CreatedByUser string
	CreatedAt     time.Time
}
