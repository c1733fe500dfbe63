package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// actionDispatcher executes transition actions after the new status has been
// committed. Publishing runs outside the transaction: there is no distributed
// transaction spanning the status write and the outbound message, so a
// publish failure leaves the order in its committed status and is logged for
// operational follow-up rather than surfaced to the caller.
type actionDispatcher struct {
	gateway ports.MessageGateway
	logger  *slog.Logger
}

func newActionDispatcher(gateway ports.MessageGateway, logger *slog.Logger) actionDispatcher {
	return actionDispatcher{
		gateway: gateway,
		logger:  logger.With("component", "action_dispatcher"),
	}
}

func (d actionDispatcher) dispatch(ctx context.Context, action order.Action, o *order.Order) {
	switch action {
	case order.ActionNone:

	case order.ActionRequestValidation:
		request := ports.ValidationRequest{OrderID: o.ID().String(), Lines: lineMessages(o)}
		if err := d.gateway.PublishValidationRequest(ctx, request); err != nil {
			d.logger.ErrorContext(ctx, "Failed to publish validation request",
				"orderId", o.ID().String(), "error", err)
			return
		}
		d.logger.DebugContext(ctx, "Validation request published", "orderId", o.ID().String())

	case order.ActionRequestAllocation:
		request := ports.AllocationRequest{OrderID: o.ID().String(), Lines: lineMessages(o)}
		if err := d.gateway.PublishAllocationRequest(ctx, request); err != nil {
			d.logger.ErrorContext(ctx, "Failed to publish allocation request",
				"orderId", o.ID().String(), "error", err)
			return
		}
		d.logger.DebugContext(ctx, "Allocation request published", "orderId", o.ID().String())

	case order.ActionRecordValidationFailure:
		d.logger.ErrorContext(ctx, "Order failed validation; manual intervention required",
			"orderId", o.ID().String())

	case order.ActionRecordAllocationFailure:
		d.logger.ErrorContext(ctx, "Order allocation failed; manual intervention required",
			"orderId", o.ID().String())

	case order.ActionReleaseAllocation:
		notice := ports.DeallocationNotice{OrderID: o.ID().String(), Lines: lineMessages(o)}
		if err := d.gateway.PublishDeallocationNotice(ctx, notice); err != nil {
			d.logger.ErrorContext(ctx, "Failed to publish deallocation notice",
				"orderId", o.ID().String(), "error", err)
			return
		}
		d.logger.DebugContext(ctx, "Deallocation notice published", "orderId", o.ID().String())
	}
}

func lineMessages(o *order.Order) []ports.LineMessage {
	lines := o.Lines()
	messages := make([]ports.LineMessage, 0, len(lines))
	for _, line := range lines {
		messages = append(messages, ports.LineMessage{
			LineID:            line.ID().String(),
			SKU:               line.SKU(),
			Quantity:          line.Quantity(),
			AllocatedQuantity: line.AllocatedQuantity(),
		})
	}
	return messages
}
