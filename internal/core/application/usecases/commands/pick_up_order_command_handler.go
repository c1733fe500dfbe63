package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// PickUpOrderCommandHandler moves an allocated order to its terminal
// PICKED_UP status. The event is rejected as a logged no-op for orders in
// any other status.
type PickUpOrderCommandHandler struct {
	pipeline eventPipeline
}

// NewPickUpOrderCommandHandler creates a handler for pickups.
func NewPickUpOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		pipeline: newEventPipeline(uowFactory, gateway, monitor, awaitTimeout, logger),
	}
}

// Handle fires PICKED_UP for the order.
func (h PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventPickedUp)
}
