package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ProcessValidationResultCommandHandler reacts to the validator's verdict.
// A positive verdict chains two events: VALIDATION_PASSED, then, once the
// VALIDATED status is confirmed committed, ALLOCATE_ORDER, which emits the
// allocation request. A negative verdict fires VALIDATION_FAILED and parks
// the order in its terminal exception status.
type ProcessValidationResultCommandHandler struct {
	pipeline eventPipeline
}

// NewProcessValidationResultCommandHandler creates a handler for validation responses.
func NewProcessValidationResultCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) ProcessValidationResultCommandHandler {
	return ProcessValidationResultCommandHandler{
		pipeline: newEventPipeline(uowFactory, gateway, monitor, awaitTimeout, logger),
	}
}

// Handle applies the verdict. Both events run through the stateless pipeline,
// so the second event observes the first one's committed status, never an
// in-memory one.
func (h ProcessValidationResultCommandHandler) Handle(ctx context.Context, cmd ProcessValidationResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.IsValid() {
		return h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventValidationFailed)
	}

	if err := h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventValidationPassed); err != nil {
		return err
	}

	h.pipeline.awaitStatus(ctx, cmd.OrderID(), order.StatusValidated)

	return h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventAllocateOrder)
}
