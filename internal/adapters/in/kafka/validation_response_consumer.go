package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
)

// validationResultHandler processes the validator's verdict.
type validationResultHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessValidationResultCommand) error
}

// validationResponse is the wire payload from the validator service.
type validationResponse struct {
	OrderID string `json:"orderId"`
	IsValid bool   `json:"isValid"`
}

// ValidationResponseConsumer subscribes to the validation response topic and
// feeds verdicts into the order lifecycle.
type ValidationResponseConsumer struct {
	reader  messageReader
	handler validationResultHandler
	logger  *slog.Logger
}

// NewValidationResponseConsumer creates a consumer over the given reader.
func NewValidationResponseConsumer(
	reader messageReader,
	handler validationResultHandler,
	logger *slog.Logger,
) *ValidationResponseConsumer {
	return &ValidationResponseConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "validation_response_consumer"),
	}
}

// Run consumes messages until ctx is cancelled. Blocks; call from its own
// goroutine.
func (c *ValidationResponseConsumer) Run(ctx context.Context) {
	c.logger.InfoContext(ctx, "Validation response consumer started")
	consumeLoop(ctx, c.reader, c.logger, c.process)
	c.logger.InfoContext(ctx, "Validation response consumer stopped")
}

// Close releases the underlying topic subscription.
func (c *ValidationResponseConsumer) Close() error {
	return c.reader.Close()
}

func (c *ValidationResponseConsumer) process(ctx context.Context, msg kafkago.Message) error {
	var response validationResponse
	if err := json.Unmarshal(msg.Value, &response); err != nil {
		c.logger.ErrorContext(ctx, "Discarding undecodable validation response",
			"offset", msg.Offset, "error", err)
		return nil
	}

	orderID, err := kernel.UUIDFromString(response.OrderID)
	if err != nil {
		c.logger.ErrorContext(ctx, "Discarding validation response with invalid order id",
			"orderId", response.OrderID, "error", err)
		return nil
	}

	cmd, err := commands.NewProcessValidationResultCommand(orderID, response.IsValid)
	if err != nil {
		return err
	}

	return c.handler.Handle(ctx, cmd)
}
