package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wardsync/internal/domain"
	"wardsync/internal/ordersync/buffer"
	"wardsync/internal/ordersync/gate"
)

// StoreClient is the remote boundary the controller dispatches through.
type StoreClient interface {
	ListPatients(ctx context.Context) ([]domain.Patient, error)
	GetPatientOrders(ctx context.Context, patientInternalID string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, patientExternalID, message string, audit domain.AuditContext) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderInternalID, message string, audit domain.AuditContext) error
}

// Controller keeps the staging buffer consistent with the remote store. It
// owns patient selection, stages edits the moment the operator types, routes
// every durable mutation through the commit gate, and reconciles the buffer
// with the store's authoritative response.
//
// The controller is the only writer of the buffer and the gate; its mutex
// enforces that single-writer discipline across the fetch and dispatch
// goroutines. Network calls never run under the lock.
type Controller struct {
	client   StoreClient
	listener Listener
	audit    domain.AuditContext
	logger   *zap.Logger

	mu       sync.Mutex
	buffer   *buffer.Buffer
	gate     *gate.Gate
	selected *domain.Patient
	loading  bool
	draft    string
	// epoch is bumped on every selection change; async results captured under
	// an older epoch are discarded (stale-response guard).
	epoch uint64
}

func NewController(client StoreClient, buf *buffer.Buffer, g *gate.Gate, listener Listener, audit domain.AuditContext, logger *zap.Logger) *Controller {
	if listener == nil {
		listener = NopListener{}
	}
	return &Controller{
		client:   client,
		listener: listener,
		audit:    audit,
		logger:   logger,
		buffer:   buf,
		gate:     g,
	}
}

// LoadPatients fetches the roster. A failure degrades to an empty roster
// behind a log entry; the operator sees "no data" rather than an error.
func (c *Controller) LoadPatients(ctx context.Context) []domain.Patient {
	patients, err := c.client.ListPatients(ctx)
	if err != nil {
		c.logger.Warn("fetching patient roster failed", zap.Error(err))
		return []domain.Patient{}
	}
	return patients
}

// SelectPatient makes patient the active selection: the buffer and draft are
// cleared, any pending mutation is cancelled, and the patient's orders are
// fetched asynchronously. A response arriving for a superseded selection is
// discarded.
func (c *Controller) SelectPatient(ctx context.Context, patient domain.Patient) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	p := patient
	c.selected = &p
	c.loading = true
	c.draft = ""
	c.buffer.Hydrate(nil)
	c.gate.Cancel()
	c.mu.Unlock()

	go func() {
		orders, err := c.client.GetPatientOrders(ctx, patient.InternalID)
		if err != nil {
			// Swallowed: the detail view degrades to an empty order list.
			c.logger.Warn("fetching patient orders failed",
				zap.String("patientId", patient.InternalID),
				zap.Error(err),
			)
			orders = nil
		}

		c.mu.Lock()
		if epoch != c.epoch {
			c.mu.Unlock()
			c.logger.Debug("discarding stale order fetch",
				zap.String("patientId", patient.InternalID),
			)
			return
		}
		c.buffer.Hydrate(orders)
		c.loading = false
		snapshot := c.buffer.Orders()
		c.mu.Unlock()

		c.listener.OrdersLoaded(patient, snapshot)
	}()
}

// ClearSelection tears down the detail view: buffer, draft and any pending
// mutation are discarded, and in-flight results for the old selection become
// stale.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.selected = nil
	c.loading = false
	c.draft = ""
	c.buffer.Hydrate(nil)
	c.gate.Cancel()
}

// SetOrderMessage stages an edit locally, with no network effect.
func (c *Controller) SetOrderMessage(orderID, message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.SetMessage(orderID, message)
}

// BlurOrder requests an edit commit for the order's currently staged
// message. Returns false when the order is unknown or the gate is busy.
func (c *Controller) BlurOrder(orderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	order, ok := c.buffer.Get(orderID)
	if !ok {
		return false
	}
	return c.gate.RequestEdit(orderID, order.Message)
}

// SetDraft stages the singular new-order composition text. The draft lives
// outside the buffer until its create commits.
func (c *Controller) SetDraft(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = message
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SubmitDraft requests a create commit for the current draft. Empty and
// whitespace-only drafts never reach the gate; the rejection is silent.
func (c *Controller) SubmitDraft() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return false
	}
	return c.gate.RequestCreate(c.draft)
}

// Pending exposes the mutation awaiting confirmation, if any.
func (c *Controller) Pending() (gate.Mutation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Pending()
}

// Cancel discards the pending mutation. The optimistic staged text remains
// in the buffer (edit) or the draft field (create).
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gate.Cancel()
}

// Confirm takes the pending mutation through the gate and dispatches the
// store call asynchronously. Returns false when nothing is pending or no
// patient is selected.
func (c *Controller) Confirm(ctx context.Context) bool {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return false
	}
	m, ok := c.gate.Confirm()
	if !ok {
		c.mu.Unlock()
		return false
	}
	selected := *c.selected
	epoch := c.epoch
	c.mu.Unlock()

	go func() {
		switch m.Kind {
		case gate.KindCreate:
			c.dispatchCreate(ctx, epoch, selected, m)
		case gate.KindEdit:
			c.dispatchEdit(ctx, epoch, m)
		}
	}()
	return true
}

func (c *Controller) dispatchCreate(ctx context.Context, epoch uint64, selected domain.Patient, m gate.Mutation) {
	created, err := c.client.CreateOrder(ctx, selected.ExternalID, m.Message, c.audit)
	if err != nil {
		// The draft stays staged for another attempt; no rollback.
		c.logger.Error("creating order failed",
			zap.String("patientExternalId", selected.ExternalID),
			zap.Error(err),
		)
		return
	}

	// Legacy success-with-null: fall back to the locally-known message. The
	// store assigns an internalId visible on the next fetch.
	order := domain.Order{Message: m.Message}
	if created != nil {
		order = *created
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.logger.Debug("dropping create reconciliation for superseded selection",
			zap.String("patientExternalId", selected.ExternalID),
		)
		return
	}
	c.buffer.Append(order)
	c.draft = ""
	c.mu.Unlock()

	c.listener.OrderAppended(order)
}

func (c *Controller) dispatchEdit(ctx context.Context, epoch uint64, m gate.Mutation) {
	if err := c.client.UpdateOrder(ctx, m.TargetOrderID, m.Message, c.audit); err != nil {
		// The buffer keeps the optimistic value; the divergence persists
		// until the next successful fetch reconciles it.
		c.logger.Error("updating order failed",
			zap.String("orderId", m.TargetOrderID),
			zap.Error(err),
		)
		return
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.logger.Debug("dropping edit reconciliation for superseded selection",
			zap.String("orderId", m.TargetOrderID),
		)
		return
	}
	c.buffer.Replace(m.TargetOrderID, m.Message, time.Now().UTC())
	updated, _ := c.buffer.Get(m.TargetOrderID)
	c.mu.Unlock()

	c.listener.OrderUpdated(updated)
}

// Selected returns the active patient, if any.
func (c *Controller) Selected() (domain.Patient, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return domain.Patient{}, false
	}
	return *c.selected, true
}

// Loading reports whether an order fetch for the active selection is still
// outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Orders returns a snapshot of the staging buffer for rendering.
func (c *Controller) Orders() []domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Orders()
}
