// Package kafka consumes validator and allocator responses and feeds them
// back into the order lifecycle. Each consumer owns one topic subscription
// and translates wire payloads into orchestrator commands.
package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// messageReader is the subset of kafka.Reader the consumers need.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewReader creates a consumer-group reader for a response topic.
func NewReader(broker string, groupID string, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   topic,
	})
}

// consumeLoop fetches messages until ctx is cancelled. A message is committed
// only after its handler returned without error; failed messages are retried
// on redelivery. Undecodable payloads are handled inside the message handlers
// and count as processed, otherwise a poison message would wedge the topic.
func consumeLoop(
	ctx context.Context,
	reader messageReader,
	logger *slog.Logger,
	handle func(context.Context, kafkago.Message) error,
) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			logger.ErrorContext(ctx, "Failed to fetch message", "error", err)
			continue
		}

		if err = handle(ctx, msg); err != nil {
			logger.ErrorContext(ctx, "Failed to process message",
				"topic", msg.Topic, "offset", msg.Offset, "error", err)
			continue
		}

		if err = reader.CommitMessages(ctx, msg); err != nil {
			logger.ErrorContext(ctx, "Failed to commit message",
				"topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
	}
}
