package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
)

// allocationOutcomeHandler processes the allocator's verdict.
type allocationOutcomeHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessAllocationOutcomeCommand) error
}

// allocationResponse is the wire payload from the allocator service.
type allocationResponse struct {
	OrderID string                   `json:"orderId"`
	Outcome string                   `json:"outcome"`
	Lines   []allocationResponseLine `json:"lines"`
}

type allocationResponseLine struct {
	LineID            string `json:"lineId"`
	AllocatedQuantity int    `json:"allocatedQuantity"`
}

// AllocationResponseConsumer subscribes to the allocation response topic and
// feeds verdicts, with their per-line quantities, into the order lifecycle.
type AllocationResponseConsumer struct {
	reader  messageReader
	handler allocationOutcomeHandler
	logger  *slog.Logger
}

// NewAllocationResponseConsumer creates a consumer over the given reader.
func NewAllocationResponseConsumer(
	reader messageReader,
	handler allocationOutcomeHandler,
	logger *slog.Logger,
) *AllocationResponseConsumer {
	return &AllocationResponseConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "allocation_response_consumer"),
	}
}

// Run consumes messages until ctx is cancelled. Blocks; call from its own
// goroutine.
func (c *AllocationResponseConsumer) Run(ctx context.Context) {
	c.logger.InfoContext(ctx, "Allocation response consumer started")
	consumeLoop(ctx, c.reader, c.logger, c.process)
	c.logger.InfoContext(ctx, "Allocation response consumer stopped")
}

// Close releases the underlying topic subscription.
func (c *AllocationResponseConsumer) Close() error {
	return c.reader.Close()
}

func (c *AllocationResponseConsumer) process(ctx context.Context, msg kafkago.Message) error {
	var response allocationResponse
	if err := json.Unmarshal(msg.Value, &response); err != nil {
		c.logger.ErrorContext(ctx, "Discarding undecodable allocation response",
			"offset", msg.Offset, "error", err)
		return nil
	}

	orderID, err := kernel.UUIDFromString(response.OrderID)
	if err != nil {
		c.logger.ErrorContext(ctx, "Discarding allocation response with invalid order id",
			"orderId", response.OrderID, "error", err)
		return nil
	}

	outcome, err := parseOutcome(response.Outcome)
	if err != nil {
		c.logger.ErrorContext(ctx, "Discarding allocation response with unknown outcome",
			"orderId", response.OrderID, "outcome", response.Outcome)
		return nil
	}

	allocations := make(map[kernel.UUID]int, len(response.Lines))
	for _, line := range response.Lines {
		lineID, lineErr := kernel.UUIDFromString(line.LineID)
		if lineErr != nil {
			c.logger.WarnContext(ctx, "Skipping allocation line with invalid id",
				"orderId", response.OrderID, "lineId", line.LineID)
			continue
		}
		allocations[lineID] = line.AllocatedQuantity
	}

	cmd, err := commands.NewProcessAllocationOutcomeCommand(orderID, outcome, allocations)
	if err != nil {
		return err
	}

	return c.handler.Handle(ctx, cmd)
}

func parseOutcome(s string) (commands.AllocationOutcome, error) {
	switch s {
	case commands.AllocationOutcomeSuccess.String():
		return commands.AllocationOutcomeSuccess, nil
	case commands.AllocationOutcomeNoInventory.String():
		return commands.AllocationOutcomeNoInventory, nil
	case commands.AllocationOutcomeFailed.String():
		return commands.AllocationOutcomeFailed, nil
	default:
		return commands.AllocationOutcomeUnknown, fmt.Errorf("%s is not a valid allocation outcome", s)
	}
}
