package commands_test

import (
	"testing"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveVersionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InternalReview)
	version, err := document.NewVersion(testOrder.ID(), 1, "epc", false, "", time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewApproveVersionCommand(testOrder.ID(), 1, "looks good", "admin")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	documentRepo := new(MockDocumentVersionRepository)
	timelineRepo := new(MockTimelineRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DocumentVersionRepository").Return(documentRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		documentRepo.On("Get", ctx, testOrder.ID(), 1).Return(version, nil).Once(),
		documentRepo.On("MarkApproved", ctx, testOrder.ID(), 1).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("TimelineRepository").Return(timelineRepo).Once(),
		timelineRepo.On("Append", ctx, mock.AnythingOfType("order.TimelineEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveVersionCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Finalising, result.Order.Status())
	assert.True(t, result.Order.VersionLocked())
	assert.Equal(t, 1, result.Order.ApprovedVersion())
	documentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApproveVersionCommandHandler_Handle_IdempotentReapprove(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InternalReview)
	_, err := testOrder.Approve(2, "", "admin", time.Now().UTC())
	require.NoError(t, err)

	version, err := document.NewVersion(testOrder.ID(), 2, "epc", true, "fixed tone", time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewApproveVersionCommand(testOrder.ID(), 2, "", "admin")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	documentRepo := new(MockDocumentVersionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DocumentVersionRepository").Return(documentRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		documentRepo.On("Get", ctx, testOrder.ID(), 2).Return(version, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveVersionCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Finalising, result.Order.Status())
	documentRepo.AssertNotCalled(t, "MarkApproved")
	orderRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestApproveVersionCommandHandler_Handle_AlreadyLocked(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InternalReview)
	_, err := testOrder.Approve(1, "", "admin", time.Now().UTC())
	require.NoError(t, err)

	version, err := document.NewVersion(testOrder.ID(), 2, "epc", true, "fixed tone", time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewApproveVersionCommand(testOrder.ID(), 2, "", "admin")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	documentRepo := new(MockDocumentVersionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DocumentVersionRepository").Return(documentRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		documentRepo.On("Get", ctx, testOrder.ID(), 2).Return(version, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveVersionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAlreadyLocked)
}

func TestApproveVersionCommandHandler_Handle_VersionNotFound(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InternalReview)

	cmd, err := commands.NewApproveVersionCommand(testOrder.ID(), 3, "", "admin")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	documentRepo := new(MockDocumentVersionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DocumentVersionRepository").Return(documentRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		documentRepo.On("Get", ctx, testOrder.ID(), 3).
			Return(nil, errs.NewObjectNotFoundError("version", 3)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveVersionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestApproveVersionCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrderInStatus(t, order.InProgress)
	version, err := document.NewVersion(testOrder.ID(), 1, "epc", false, "", time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewApproveVersionCommand(testOrder.ID(), 1, "", "admin")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	documentRepo := new(MockDocumentVersionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DocumentVersionRepository").Return(documentRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		documentRepo.On("Get", ctx, testOrder.ID(), 1).Return(version, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveVersionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
