package queries_test

import (
	"context"
	"time"

	"compliance/internal/adapters/out/postgres/documentrepo"
	"compliance/internal/adapters/out/postgres/orderrepo"
	"compliance/internal/adapters/out/postgres/timelinerepo"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository tracker without recording.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

// postgresSuite spins up one Postgres container per suite and wipes the
// tables between tests.
type postgresSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	orderRepo    *orderrepo.GormOrderRepository
	documentRepo *documentrepo.GormDocumentVersionRepository
	timelineRepo *timelinerepo.GormTimelineRepository
}

func (s *postgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&documentrepo.DocumentVersionDTO{},
		&timelinerepo.TimelineEntryDTO{},
	)
	s.Require().NoError(err)

	s.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
	s.documentRepo = documentrepo.NewGormDocumentVersionRepository(db)
	s.timelineRepo = timelinerepo.NewGormTimelineRepository(db)
}

func (s *postgresSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *postgresSuite) SetupTest() {
	for _, table := range []string{"orders", "document_versions", "order_timeline"} {
		err := s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		s.Require().NoError(err)
	}
}

// newOrder builds a valid order in CREATED status.
func (s *postgresSuite) newOrder(priority bool, slaHours *int) *order.Order {
	customer, err := order.NewCustomer("Acme Ltd", "ops@acme.example", "+441234567890")
	s.Require().NoError(err)
	service, err := order.NewService("EPC Certificate", "epc", "energy")
	s.Require().NoError(err)
	pricing, err := kernel.NewMoney(12900, "GBP")
	s.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customer, service, pricing, slaHours, priority, "", time.Now().UTC(),
	)
	s.Require().NoError(err)
	return aggregate
}

// advance applies pipeline actions in sequence.
func (s *postgresSuite) advance(aggregate *order.Order, actions ...order.Action) {
	for _, action := range actions {
		_, err := aggregate.ApplyAction(action, order.SystemAuto, "", "", time.Now().UTC())
		s.Require().NoError(err)
	}
}

// seedOrderInStatus creates and persists an order advanced to the status.
func (s *postgresSuite) seedOrderInStatus(status order.Status) *order.Order {
	sla := 72
	aggregate := s.newOrder(false, &sla)

	paths := map[order.Status][]order.Action{
		order.Created:    nil,
		order.Paid:       {order.ActionMarkPaid},
		order.Queued:     {order.ActionMarkPaid, order.ActionQueue},
		order.InProgress: {order.ActionMarkPaid, order.ActionQueue, order.ActionStart},
		order.DraftReady: {order.ActionMarkPaid, order.ActionQueue, order.ActionStart, order.ActionDraftReady},
		order.InternalReview: {
			order.ActionMarkPaid, order.ActionQueue, order.ActionStart,
			order.ActionDraftReady, order.ActionSubmitReview,
		},
	}
	actions, ok := paths[status]
	s.Require().True(ok, "no fixture path to status %s", status)
	s.advance(aggregate, actions...)

	err := s.orderRepo.Add(context.Background(), aggregate)
	s.Require().NoError(err)
	return aggregate
}
