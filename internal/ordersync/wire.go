package ordersync

import (
	"go.uber.org/zap"

	"wardsync/internal/domain"
	"wardsync/internal/ordersync/buffer"
	"wardsync/internal/ordersync/controller"
	"wardsync/internal/ordersync/gate"
)

// NewModule assembles the synchronization core: one staging buffer and one
// commit gate, both written exclusively by the returned controller.
func NewModule(client controller.StoreClient, listener controller.Listener, audit domain.AuditContext, logger *zap.Logger) *controller.Controller {
	buf := buffer.New()
	g := gate.New()
	return controller.NewController(client, buf, g, listener, audit, logger)
}
