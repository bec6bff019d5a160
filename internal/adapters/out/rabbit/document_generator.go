package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"compliance/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// generationMessage is the wire format of one generation request.
type generationMessage struct {
	OrderID            string    `json:"order_id"`
	BaseVersion        int       `json:"base_version"`
	CorrectionNotes    string    `json:"correction_notes,omitempty"`
	ReasonCode         string    `json:"reason_code,omitempty"`
	AffectedSections   []string  `json:"affected_sections,omitempty"`
	PreserveNamesDates bool      `json:"preserve_names_dates"`
	PreserveFormat     bool      `json:"preserve_format"`
	RequestedAt        time.Time `json:"requested_at"`
}

// RabbitDocumentGenerator publishes generation requests to the generation
// exchange. The generator worker reports results back on the results queue.
type RabbitDocumentGenerator struct {
	ch     *amqp091.Channel
	logger *slog.Logger
}

// NewRabbitDocumentGenerator creates a generator client on an open channel.
func NewRabbitDocumentGenerator(ch *amqp091.Channel, logger *slog.Logger) *RabbitDocumentGenerator {
	return &RabbitDocumentGenerator{
		ch:     ch,
		logger: logger.With("component", "rabbit_document_generator"),
	}
}

// RequestGeneration publishes one persistent generation request.
func (g *RabbitDocumentGenerator) RequestGeneration(ctx context.Context, request ports.GenerationRequest) error {
	body, err := json.Marshal(generationMessage{
		OrderID:            request.OrderID.String(),
		BaseVersion:        request.BaseVersion,
		CorrectionNotes:    request.CorrectionNotes,
		ReasonCode:         request.Detail.ReasonCode.String(),
		AffectedSections:   request.Detail.AffectedSections,
		PreserveNamesDates: request.Detail.Guardrails.PreserveNamesDates,
		PreserveFormat:     request.Detail.Guardrails.PreserveFormat,
		RequestedAt:        time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = g.ch.PublishWithContext(ctx,
		GenerationExchange,
		GenerationRequestsKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	g.logger.DebugContext(ctx, "generation request published",
		"order_id", request.OrderID.String(),
		"base_version", request.BaseVersion,
	)
	return nil
}
