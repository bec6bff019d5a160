package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDocumentVersionRepository struct{ mock.Mock }

func (m *MockDocumentVersionRepository) Add(ctx context.Context, v *document.Version) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockDocumentVersionRepository) Get(
	ctx context.Context, orderID kernel.UUID, version int,
) (*document.Version, error) {
	args := m.Called(ctx, orderID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Version), args.Error(1)
}

func (m *MockDocumentVersionRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*document.Version, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Version), args.Error(1)
}

func (m *MockDocumentVersionRepository) MaxVersion(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentVersionRepository) MarkApproved(
	ctx context.Context, orderID kernel.UUID, version int,
) error {
	args := m.Called(ctx, orderID, version)
	return args.Error(0)
}

type MockTimelineRepository struct{ mock.Mock }

func (m *MockTimelineRepository) Append(ctx context.Context, entry order.TimelineEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimelineRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]order.TimelineEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TimelineEntry), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) TimelineRepository() ports.TimelineRepository {
	args := m.Called()
	return args.Get(0).(ports.TimelineRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DocumentVersionRepository() ports.DocumentVersionRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentVersionRepository)
}

func (m *MockUoW) TimelineRepository() ports.TimelineRepository {
	args := m.Called()
	return args.Get(0).(ports.TimelineRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockDocumentGenerator struct{ mock.Mock }

func (m *MockDocumentGenerator) RequestGeneration(ctx context.Context, r ports.GenerationRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestOrder builds an order in CREATED status with valid fixture data.
func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Acme Ltd", "ops@acme.example", "+441234567890")
	require.NoError(t, err)
	service, err := order.NewService("EPC Certificate", "epc", "energy")
	require.NoError(t, err)
	pricing, err := kernel.NewMoney(12900, "GBP")
	require.NoError(t, err)

	sla := 72
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customer, service, pricing, &sla, false, "", time.Now().UTC(),
	)
	require.NoError(t, err)

	return aggregate
}

// newTestOrderInStatus advances a fresh order through the pipeline until it
// reaches the wanted status.
func newTestOrderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	aggregate := newTestOrder(t)
	now := time.Now().UTC()

	steps := map[order.Status][]order.Action{
		order.Created:        {},
		order.Paid:           {order.ActionMarkPaid},
		order.Queued:         {order.ActionMarkPaid, order.ActionQueue},
		order.InProgress:     {order.ActionMarkPaid, order.ActionQueue, order.ActionStart},
		order.DraftReady:     {order.ActionMarkPaid, order.ActionQueue, order.ActionStart, order.ActionDraftReady},
		order.InternalReview: {order.ActionMarkPaid, order.ActionQueue, order.ActionStart, order.ActionDraftReady, order.ActionSubmitReview},
		order.Failed:         {order.ActionMarkPaid, order.ActionQueue, order.ActionStart, order.ActionFail},
	}

	actions, ok := steps[status]
	require.True(t, ok, "no fixture path to status %s", status)

	for _, action := range actions {
		_, err := aggregate.ApplyAction(action, order.SystemAuto, "", "", now)
		require.NoError(t, err)
	}
	require.Equal(t, status, aggregate.Status())

	return aggregate
}
