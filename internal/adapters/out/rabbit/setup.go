// Package rabbit publishes the engine's outbound messages: client
// notifications and document generation requests. Both collaborators are
// fire-and-forget from the engine's perspective; delivery guarantees beyond
// persistent messages are the broker's problem.
package rabbit

import (
	"github.com/rabbitmq/amqp091-go"
)

const (
	// NotificationsExchange carries client-facing notification messages,
	// routed by template name.
	NotificationsExchange = "order_notifications"

	// GenerationExchange carries document generation requests.
	GenerationExchange = "document_generation"

	// GenerationRequestsKey routes generation requests to the worker queue.
	GenerationRequestsKey = "generate"

	// GenerationRequestsQueue is consumed by the generator workers.
	GenerationRequestsQueue = "compliance_generation_requests"

	// GenerationResultsQueue receives the generator's completion messages.
	GenerationResultsQueue = "compliance_generation_results"
)

// DeclareTopology declares the exchanges and queues the engine uses.
// Declarations are idempotent; call once at startup.
func DeclareTopology(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(
		NotificationsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(
		GenerationExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		GenerationRequestsQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	if err := ch.QueueBind(
		GenerationRequestsQueue,
		GenerationRequestsKey,
		GenerationExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		GenerationResultsQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	return nil
}
