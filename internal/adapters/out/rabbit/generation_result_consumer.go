package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/kernel"

	"github.com/rabbitmq/amqp091-go"
)

// generationResultMessage is the wire format of one generator completion.
type generationResultMessage struct {
	OrderID      string `json:"order_id"`
	DocumentType string `json:"document_type"`
}

// GenerationResultConsumer consumes the generator's completion messages and
// records the new document version through the usecase layer.
type GenerationResultConsumer struct {
	ch      *amqp091.Channel
	handler commands.RecordGeneratedVersionCommandHandler
	logger  *slog.Logger
}

// NewGenerationResultConsumer creates a consumer on an open channel.
func NewGenerationResultConsumer(
	ch *amqp091.Channel,
	handler commands.RecordGeneratedVersionCommandHandler,
	logger *slog.Logger,
) *GenerationResultConsumer {
	return &GenerationResultConsumer{
		ch:      ch,
		handler: handler,
		logger:  logger.With("component", "generation_result_consumer"),
	}
}

// Start begins consuming in a background goroutine. The goroutine exits when
// the channel or the context closes. A malformed or failing message is logged
// and dropped; the generator retries by republishing.
func (c *GenerationResultConsumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.Consume(
		GenerationResultsQueue,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				c.handle(ctx, delivery.Body)
			}
		}
	}()

	return nil
}

func (c *GenerationResultConsumer) handle(ctx context.Context, body []byte) {
	var message generationResultMessage
	if err := json.Unmarshal(body, &message); err != nil {
		c.logger.ErrorContext(ctx, "malformed generation result", "error", err)
		return
	}

	orderID, err := kernel.UUIDFromString(message.OrderID)
	if err != nil {
		c.logger.ErrorContext(ctx, "invalid order id in generation result",
			"order_id", message.OrderID, "error", err)
		return
	}

	command, err := commands.NewRecordGeneratedVersionCommand(orderID, message.DocumentType)
	if err != nil {
		c.logger.ErrorContext(ctx, "invalid generation result",
			"order_id", message.OrderID, "error", err)
		return
	}

	result, err := c.handler.Handle(ctx, command)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to record generated version",
			"order_id", message.OrderID, "error", err)
		return
	}

	c.logger.InfoContext(ctx, "generated version recorded",
		"order_id", message.OrderID,
		"version", result.Version.Number(),
	)
}
