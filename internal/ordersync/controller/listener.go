package controller

import "wardsync/internal/domain"

// Listener receives the user-visible acknowledgments the controller emits.
// Failures are deliberately not delivered here: fetch and commit failures
// degrade silently behind a log entry, and the buffer keeps its optimistic
// value.
type Listener interface {
	// OrdersLoaded fires when a selection's order fetch has hydrated the
	// buffer (successfully or degraded to empty).
	OrdersLoaded(patient domain.Patient, orders []domain.Order)
	// OrderAppended fires after a confirmed create has been reconciled.
	OrderAppended(order domain.Order)
	// OrderUpdated fires after a confirmed edit has been reconciled. This is
	// the operator's save acknowledgment.
	OrderUpdated(order domain.Order)
}

// NopListener satisfies Listener for callers that do not render.
type NopListener struct{}

func (NopListener) OrdersLoaded(domain.Patient, []domain.Order) {}
func (NopListener) OrderAppended(domain.Order)                  {}
func (NopListener) OrderUpdated(domain.Order)                   {}
