package ports

import (
	"context"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
)

// GenerationRequest asks the external document generator for a corrected
// version. BaseVersion is the version the correction is against; guardrails
// are passed through uninterpreted.
type GenerationRequest struct {
	OrderID         kernel.UUID
	BaseVersion     int
	CorrectionNotes string
	Detail          order.RegenerationDetail
}

// DocumentGenerator is the outbound port to the external generation
// collaborator. Requests are fire-and-forget; the generator reports back
// through the record-generated-version operation or a failure signal, and a
// request that never completes leaves the order where it is for the
// stalled-order job to flag.
type DocumentGenerator interface {
	RequestGeneration(ctx context.Context, request GenerationRequest) error
}
