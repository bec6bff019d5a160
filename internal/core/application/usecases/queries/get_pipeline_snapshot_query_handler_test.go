package queries_test

import (
	"context"
	"testing"

	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type GetPipelineSnapshotQueryHandlerTestSuite struct {
	postgresSuite
	handler queries.GetPipelineSnapshotQueryHandler
}

func (s *GetPipelineSnapshotQueryHandlerTestSuite) SetupSuite() {
	s.postgresSuite.SetupSuite()
	s.handler = queries.NewGetPipelineSnapshotQueryHandler(s.db)
}

func (s *GetPipelineSnapshotQueryHandlerTestSuite) TestHandle_EmptyDatabase_AllStagesZero() {
	query := queries.NewGetPipelineSnapshotQuery()

	snapshot, err := s.handler.Handle(context.Background(), query)

	s.Require().NoError(err)
	s.Len(snapshot, len(order.AllStatuses()))
	for _, stage := range snapshot {
		s.Equal(0, stage.Count, "stage %s should be empty", stage.Status)
	}
}

func (s *GetPipelineSnapshotQueryHandlerTestSuite) TestHandle_CountsPerStage() {
	s.seedOrderInStatus(order.Created)
	s.seedOrderInStatus(order.Queued)
	s.seedOrderInStatus(order.Queued)
	s.seedOrderInStatus(order.InternalReview)

	query := queries.NewGetPipelineSnapshotQuery()

	snapshot, err := s.handler.Handle(context.Background(), query)

	s.Require().NoError(err)

	counts := make(map[string]int)
	for _, stage := range snapshot {
		counts[stage.Status] = stage.Count
	}
	s.Equal(1, counts["CREATED"])
	s.Equal(2, counts["QUEUED"])
	s.Equal(1, counts["INTERNAL_REVIEW"])
	s.Equal(0, counts["COMPLETED"])
}

func (s *GetPipelineSnapshotQueryHandlerTestSuite) TestHandle_StagesInPipelineOrder() {
	query := queries.NewGetPipelineSnapshotQuery()

	snapshot, err := s.handler.Handle(context.Background(), query)

	s.Require().NoError(err)
	s.Require().NotEmpty(snapshot)
	s.Equal("CREATED", snapshot[0].Status)
}

func (s *GetPipelineSnapshotQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPipelineSnapshotQuery{}

	snapshot, err := s.handler.Handle(context.Background(), invalidQuery)

	s.Require().Error(err)
	s.Nil(snapshot)
}

func TestGetPipelineSnapshotQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPipelineSnapshotQueryHandlerTestSuite))
}
