package queries_test

import (
	"context"
	"testing"
	"time"

	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type GetOrderTimelineQueryHandlerTestSuite struct {
	postgresSuite
	handler queries.GetOrderTimelineQueryHandler
}

func (s *GetOrderTimelineQueryHandlerTestSuite) SetupSuite() {
	s.postgresSuite.SetupSuite()
	s.handler = queries.NewGetOrderTimelineQueryHandler(s.db)
}

func (s *GetOrderTimelineQueryHandlerTestSuite) seedTransitions(aggregate *order.Order, actions ...order.Action) {
	ctx := context.Background()
	base := time.Now().UTC()
	for i, action := range actions {
		entry, err := aggregate.ApplyAction(
			action, order.SystemAuto, "", "", base.Add(time.Duration(i)*time.Second),
		)
		s.Require().NoError(err)
		s.Require().NoError(s.timelineRepo.Append(ctx, entry))
	}
}

func (s *GetOrderTimelineQueryHandlerTestSuite) TestHandle_EntriesOldestFirst() {
	ctx := context.Background()
	aggregate := s.newOrder(false, nil)
	s.seedTransitions(aggregate, order.ActionMarkPaid, order.ActionQueue, order.ActionStart)

	query, err := queries.NewGetOrderTimelineQuery(aggregate.ID())
	s.Require().NoError(err)

	entries, err := s.handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("CREATED", entries[0].PreviousState)
	s.Equal("PAID", entries[0].NewState)
	s.Equal("PAID", entries[1].PreviousState)
	s.Equal("QUEUED", entries[1].NewState)
	s.Equal("QUEUED", entries[2].PreviousState)
	s.Equal("IN_PROGRESS", entries[2].NewState)
	s.Equal("system_auto", entries[0].TransitionType)
}

func (s *GetOrderTimelineQueryHandlerTestSuite) TestHandle_RegenerationDetailRoundTrips() {
	ctx := context.Background()
	aggregate := s.newOrder(false, nil)
	s.seedTransitions(aggregate,
		order.ActionMarkPaid, order.ActionQueue, order.ActionStart,
		order.ActionDraftReady, order.ActionSubmitReview,
	)

	detail := order.RegenerationDetail{
		ReasonCode:       order.ReasonWrongEmphasis,
		AffectedSections: []string{"summary", "recommendations"},
		Guardrails:       order.Guardrails{PreserveNamesDates: true},
	}
	entry, err := aggregate.RequestRegeneration(detail, "lead with the risks", "admin", time.Now().UTC().Add(time.Minute))
	s.Require().NoError(err)
	s.Require().NoError(s.timelineRepo.Append(ctx, entry))

	query, err := queries.NewGetOrderTimelineQuery(aggregate.ID())
	s.Require().NoError(err)

	entries, err := s.handler.Handle(ctx, query)

	s.Require().NoError(err)
	last := entries[len(entries)-1]
	s.Equal("REGEN_REQUESTED", last.NewState)
	s.Equal("admin", last.TriggeredBy)
	s.Require().NotNil(last.Regeneration)
	s.Equal("wrong_emphasis", last.Regeneration.ReasonCode)
	s.Equal([]string{"summary", "recommendations"}, last.Regeneration.AffectedSections)
	s.True(last.Regeneration.PreserveNamesDates)
	s.False(last.Regeneration.PreserveFormat)

	for _, e := range entries[:len(entries)-1] {
		s.Nil(e.Regeneration)
	}
}

func (s *GetOrderTimelineQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderTimelineQuery(kernel.NewUUID())
	s.Require().NoError(err)

	_, err = s.handler.Handle(context.Background(), query)

	s.Require().Error(err)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderTimelineQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderTimelineQueryHandlerTestSuite))
}
