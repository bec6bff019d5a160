package queries_test

import (
	"context"
	"testing"
	"time"

	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type GetOrderQueryHandlerTestSuite struct {
	postgresSuite
	handler queries.GetOrderQueryHandler
}

func (s *GetOrderQueryHandlerTestSuite) SetupSuite() {
	s.postgresSuite.SetupSuite()
	s.handler = queries.NewGetOrderQueryHandler(s.db)
}

func (s *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsDetailWithVersions() {
	ctx := context.Background()
	aggregate := s.seedOrderInStatus(order.InternalReview)

	v1, err := document.NewVersion(aggregate.ID(), 1, "epc", false, "", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.documentRepo.Add(ctx, v1))

	v2, err := document.NewVersion(aggregate.ID(), 2, "epc", true, "softer tone", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.documentRepo.Add(ctx, v2))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	s.Require().NoError(err)

	detail, err := s.handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(aggregate.ID(), detail.ID)
	s.Equal("INTERNAL_REVIEW", detail.Status)
	s.Equal("Acme Ltd", detail.CustomerName)
	s.Equal("ops@acme.example", detail.CustomerEmail)
	s.Equal(int64(12900), detail.PriceAmount)
	s.Equal("GBP", detail.PriceCurrency)
	s.False(detail.VersionLocked)
	s.Nil(detail.ApprovedVersion)
	s.False(detail.SLAPaused)

	s.Contains(detail.AllowedActions, "approve")
	s.Contains(detail.AllowedActions, "regenerate")
	s.Contains(detail.AllowedActions, "request_info")

	s.Require().Len(detail.Versions, 2)
	s.Equal(1, detail.Versions[0].Version)
	s.False(detail.Versions[0].IsRegeneration)
	s.Equal(2, detail.Versions[1].Version)
	s.True(detail.Versions[1].IsRegeneration)
	s.Equal("softer tone", detail.Versions[1].RegenerationNotes)
}

func (s *GetOrderQueryHandlerTestSuite) TestHandle_ApprovedVersionExposed() {
	ctx := context.Background()
	aggregate := s.seedOrderInStatus(order.InternalReview)

	_, err := aggregate.Approve(1, "", "admin", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.orderRepo.Update(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	s.Require().NoError(err)

	detail, err := s.handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal("FINALISING", detail.Status)
	s.True(detail.VersionLocked)
	s.Require().NotNil(detail.ApprovedVersion)
	s.Equal(1, *detail.ApprovedVersion)
}

func (s *GetOrderQueryHandlerTestSuite) TestHandle_SLAPausedExposed() {
	ctx := context.Background()
	aggregate := s.seedOrderInStatus(order.InternalReview)

	_, err := aggregate.RequestClientInfo([]string{"address"}, "confirm the address", nil, "admin", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.orderRepo.Update(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	s.Require().NoError(err)

	detail, err := s.handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal("CLIENT_INPUT_REQUIRED", detail.Status)
	s.True(detail.SLAPaused)
}

func (s *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	s.Require().NoError(err)

	_, err = s.handler.Handle(context.Background(), query)

	s.Require().Error(err)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
