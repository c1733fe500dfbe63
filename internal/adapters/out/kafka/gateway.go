// Package kafka publishes fulfillment messages to the validator and
// allocator services. Each message type has its own topic; the order id is
// used as the message key so per-order ordering is preserved.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"fulfillment/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of kafka.Writer the gateway needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Gateway implements ports.MessageGateway on top of segmentio/kafka-go.
// One writer per topic; writers are created by the composition root and
// closed on shutdown.
type Gateway struct {
	validationRequests  messageWriter
	allocationRequests  messageWriter
	deallocationNotices messageWriter
	logger              *slog.Logger
}

// NewGateway creates a gateway over the three outbound topic writers.
func NewGateway(
	validationRequests messageWriter,
	allocationRequests messageWriter,
	deallocationNotices messageWriter,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		validationRequests:  validationRequests,
		allocationRequests:  allocationRequests,
		deallocationNotices: deallocationNotices,
		logger:              logger.With("component", "kafka_gateway"),
	}
}

// NewWriter creates a topic writer with the settings the gateway expects.
func NewWriter(broker string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:     kafkago.TCP(broker),
		Topic:    topic,
		Balancer: &kafkago.LeastBytes{},
	}
}

// Close closes every writer that supports closing.
func (g *Gateway) Close() error {
	var closeErrs []error
	for _, w := range []messageWriter{g.validationRequests, g.allocationRequests, g.deallocationNotices} {
		if closer, ok := w.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				closeErrs = append(closeErrs, err)
			}
		}
	}
	return errors.Join(closeErrs...)
}

// PublishValidationRequest asks the validator service to check the order.
func (g *Gateway) PublishValidationRequest(ctx context.Context, request ports.ValidationRequest) error {
	return g.publish(ctx, g.validationRequests, request.OrderID, request)
}

// PublishAllocationRequest asks the allocator service to reserve inventory.
func (g *Gateway) PublishAllocationRequest(ctx context.Context, request ports.AllocationRequest) error {
	return g.publish(ctx, g.allocationRequests, request.OrderID, request)
}

// PublishDeallocationNotice tells the allocator to release a cancelled
// order's reserved inventory.
func (g *Gateway) PublishDeallocationNotice(ctx context.Context, notice ports.DeallocationNotice) error {
	return g.publish(ctx, g.deallocationNotices, notice.OrderID, notice)
}

func (g *Gateway) publish(ctx context.Context, writer messageWriter, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err = writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		return err
	}

	g.logger.DebugContext(ctx, "Message published", "key", key)
	return nil
}
