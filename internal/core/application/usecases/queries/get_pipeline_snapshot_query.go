package queries

import (
	"errors"

	"compliance/internal/pkg/guard"
)

var ErrGetPipelineSnapshotQueryIsNotConstructed = errors.New(
	"GetPipelineSnapshotQuery must be created via NewGetPipelineSnapshotQuery constructor",
)

// GetPipelineSnapshotQuery retrieves the order count per pipeline stage for
// the admin dashboard. Stages with no orders are included with a zero count.
type GetPipelineSnapshotQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPipelineSnapshotQuery creates a parameterless snapshot query.
func NewGetPipelineSnapshotQuery() GetPipelineSnapshotQuery {
	return GetPipelineSnapshotQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPipelineSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetPipelineSnapshotQueryIsNotConstructed)
}

// PipelineStageCount is one stage of the snapshot.
type PipelineStageCount struct {
	Status string
	Count  int
}
