package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ProcessAllocationOutcomeCommandHandler reacts to the allocator's verdict.
// SUCCESS moves the order to ALLOCATED, NO_INVENTORY to PENDING_INVENTORY,
// FAILED to the terminal ALLOCATION_EXCEPTION. For the two verdicts that
// carry reservations, the per-line allocated quantities are written in a
// follow-up transaction once the target status is confirmed committed.
type ProcessAllocationOutcomeCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   eventPipeline
	logger     *slog.Logger
}

// NewProcessAllocationOutcomeCommandHandler creates a handler for allocation responses.
func NewProcessAllocationOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) ProcessAllocationOutcomeCommandHandler {
	return ProcessAllocationOutcomeCommandHandler{
		uowFactory: uowFactory,
		pipeline:   newEventPipeline(uowFactory, gateway, monitor, awaitTimeout, logger),
		logger:     logger.With("component", "process_allocation_outcome"),
	}
}

// Handle applies the verdict and records line allocations where applicable.
func (h ProcessAllocationOutcomeCommandHandler) Handle(ctx context.Context, cmd ProcessAllocationOutcomeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Outcome() {
	case AllocationOutcomeFailed:
		return h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventAllocationFailed)

	case AllocationOutcomeSuccess:
		if err := h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventAllocationSuccess); err != nil {
			return err
		}
		h.pipeline.awaitStatus(ctx, cmd.OrderID(), order.StatusAllocated)
		return h.recordAllocations(ctx, cmd.OrderID(), cmd.LineAllocations())

	case AllocationOutcomeNoInventory:
		if err := h.pipeline.sendEvent(ctx, cmd.OrderID(), order.EventAllocationNoInventory); err != nil {
			return err
		}
		h.pipeline.awaitStatus(ctx, cmd.OrderID(), order.StatusPendingInventory)
		return h.recordAllocations(ctx, cmd.OrderID(), cmd.LineAllocations())

	default:
		return cmd.Outcome().Validate()
	}
}

// recordAllocations writes the allocator's per-line quantities in its own
// transaction. Line ids without a counterpart on the order are ignored, as
// are order lines the verdict does not mention.
func (h ProcessAllocationOutcomeCommandHandler) recordAllocations(
	ctx context.Context,
	orderID kernel.UUID,
	allocations map[kernel.UUID]int,
) error {
	if len(allocations) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.ErrorContext(ctx, "Order not found while recording allocations",
				"orderId", orderID.String())
			return nil
		}
		return err
	}

	o.RecordAllocations(allocations)

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
