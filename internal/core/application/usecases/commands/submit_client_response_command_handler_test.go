package commands_test

import (
	"testing"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClientInputOrder(t *testing.T) *order.Order {
	t.Helper()

	testOrder := newTestOrderInStatus(t, order.InternalReview)
	_, err := testOrder.RequestClientInfo(
		[]string{"construction_year"}, "we need the construction year", nil, "admin", time.Now().UTC(),
	)
	require.NoError(t, err)
	return testOrder
}

func TestSubmitClientResponseCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newClientInputOrder(t)
	cmd, err := commands.NewSubmitClientResponseCommand(
		testOrder.ID(), map[string]string{"construction_year": "1987"},
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	timelineRepo := new(MockTimelineRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("TimelineRepository").Return(timelineRepo).Once(),
		timelineRepo.On("Append", ctx, mock.AnythingOfType("order.TimelineEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockNotificationDispatcher)
	dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Template == "client_response_received"
	})).Return(nil).Once()

	handler := commands.NewSubmitClientResponseCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InternalReview, result.Order.Status())
	assert.Equal(t, 1, result.Response.Version())
	assert.Equal(t, "1987", result.Response.Payload()["construction_year"])
	assert.Nil(t, result.Order.ClientInputRequest())
	assert.Nil(t, result.Order.SLAPausedAt())
	assert.Equal(t, order.ClientResponse, result.Entry.TransitionType())
	dispatcher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitClientResponseCommandHandler_Handle_SecondResponseIncrementsVersion(t *testing.T) {
	ctx := t.Context()

	testOrder := newClientInputOrder(t)
	_, _, err := testOrder.RecordClientResponse(map[string]string{"construction_year": "1978"}, time.Now().UTC())
	require.NoError(t, err)
	_, err = testOrder.RequestClientInfo(
		[]string{"construction_year"}, "year looks wrong, please confirm", nil, "admin", time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewSubmitClientResponseCommand(
		testOrder.ID(), map[string]string{"construction_year": "1987"},
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	timelineRepo := new(MockTimelineRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("TimelineRepository").Return(timelineRepo).Once(),
		timelineRepo.On("Append", ctx, mock.AnythingOfType("order.TimelineEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockNotificationDispatcher)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once()

	handler := commands.NewSubmitClientResponseCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Response.Version())
}

func TestSubmitClientResponseCommandHandler_Handle_NotWaitingForInput(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InternalReview)
	cmd, err := commands.NewSubmitClientResponseCommand(
		testOrder.ID(), map[string]string{"construction_year": "1987"},
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockNotificationDispatcher)

	handler := commands.NewSubmitClientResponseCommandHandler(factory, dispatcher, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestNewSubmitClientResponseCommand_EmptyPayload(t *testing.T) {
	testOrder := newTestOrder(t)
	_, err := commands.NewSubmitClientResponseCommand(testOrder.ID(), nil)
	require.Error(t, err)
}
