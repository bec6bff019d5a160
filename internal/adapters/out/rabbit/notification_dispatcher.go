package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"compliance/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// notificationMessage is the wire format of one notification.
type notificationMessage struct {
	OrderID   string            `json:"order_id"`
	Template  string            `json:"template"`
	Recipient string            `json:"recipient"`
	Context   map[string]string `json:"context,omitempty"`
	SentAt    time.Time         `json:"sent_at"`
}

// RabbitNotificationDispatcher publishes notifications to the notifications
// exchange, routed by template name so downstream consumers can subscribe
// per template.
type RabbitNotificationDispatcher struct {
	ch     *amqp091.Channel
	logger *slog.Logger
}

// NewRabbitNotificationDispatcher creates a dispatcher on an open channel.
func NewRabbitNotificationDispatcher(ch *amqp091.Channel, logger *slog.Logger) *RabbitNotificationDispatcher {
	return &RabbitNotificationDispatcher{
		ch:     ch,
		logger: logger.With("component", "rabbit_notification_dispatcher"),
	}
}

// Dispatch publishes one persistent notification message.
func (d *RabbitNotificationDispatcher) Dispatch(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notificationMessage{
		OrderID:   notification.OrderID.String(),
		Template:  notification.Template,
		Recipient: notification.Recipient,
		Context:   notification.Context,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = d.ch.PublishWithContext(ctx,
		NotificationsExchange,
		notification.Template, // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	d.logger.DebugContext(ctx, "notification published",
		"order_id", notification.OrderID.String(),
		"template", notification.Template,
	)
	return nil
}
