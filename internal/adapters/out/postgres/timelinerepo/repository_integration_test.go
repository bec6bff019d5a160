package timelinerepo_test

import (
	"context"
	"testing"
	"time"

	"compliance/internal/adapters/out/postgres/timelinerepo"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TimelineRepositoryIntegrationTestSuite provides integration tests for
// GormTimelineRepository using PostgreSQL containers.
type TimelineRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *timelinerepo.GormTimelineRepository
}

func (suite *TimelineRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&timelinerepo.TimelineEntryDTO{}))
}

func (suite *TimelineRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_timeline").Error)

	suite.repository = timelinerepo.NewGormTimelineRepository(suite.db)
}

func (suite *TimelineRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TimelineRepositoryIntegrationTestSuite) createTestEntry(
	orderID kernel.UUID, from, to order.Status, createdAt time.Time,
) order.TimelineEntry {
	entry, err := order.NewTimelineEntry(
		orderID, from, to, order.SystemAuto, "", "system", createdAt)
	suite.Require().NoError(err)
	return entry
}

func (suite *TimelineRepositoryIntegrationTestSuite) TestAppend_ValidEntry_Success() {
	ctx := context.Background()
	entry := suite.createTestEntry(
		kernel.NewUUID(), order.Created, order.Paid, time.Now().UTC())

	err := suite.repository.Append(ctx, entry)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&timelinerepo.TimelineEntryDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *TimelineRepositoryIntegrationTestSuite) TestGetAllForOrder_RoundTripsEntryFields() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	entry, err := order.NewTimelineEntry(
		orderID, order.InternalReview, order.Cancelled,
		order.AdminManual, "client withdrew the order", "reviewer@example.com", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Append(ctx, entry))

	entries, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 1)
	retrieved := entries[0]
	suite.True(retrieved.ID().IsEqual(entry.ID()))
	suite.True(retrieved.OrderID().IsEqual(orderID))
	suite.Equal(order.InternalReview, retrieved.PreviousState())
	suite.Equal(order.Cancelled, retrieved.NewState())
	suite.Equal(order.AdminManual, retrieved.TransitionType())
	suite.Equal("client withdrew the order", retrieved.Reason())
	suite.Equal("reviewer@example.com", retrieved.TriggeredBy())
	suite.Nil(retrieved.Regeneration())
	suite.WithinDuration(createdAt, retrieved.CreatedAt(), time.Millisecond)
}

func (suite *TimelineRepositoryIntegrationTestSuite) TestGetAllForOrder_RoundTripsRegenerationDetail() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	entry := order.RestoreTimelineEntry(
		kernel.NewUUID(), orderID,
		order.InternalReview, order.RegenRequested,
		order.AdminManual, "section 3 misstates the inspection date", "reviewer@example.com",
		&order.RegenerationDetail{
			ReasonCode:       order.ReasonFactualError,
			AffectedSections: []string{"section_3", "summary"},
			Guardrails: order.Guardrails{
				PreserveNamesDates: true,
				PreserveFormat:     true,
			},
		},
		time.Now().UTC())
	suite.Require().NoError(suite.repository.Append(ctx, entry))

	entries, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 1)
	detail := entries[0].Regeneration()
	suite.Require().NotNil(detail)
	suite.Equal(order.ReasonFactualError, detail.ReasonCode)
	suite.Equal([]string{"section_3", "summary"}, detail.AffectedSections)
	suite.True(detail.Guardrails.PreserveNamesDates)
	suite.True(detail.Guardrails.PreserveFormat)
}

func (suite *TimelineRepositoryIntegrationTestSuite) TestGetAllForOrder_ReturnsOldestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Append out of chronological order to verify sorting comes from the query.
	second := suite.createTestEntry(orderID, order.Paid, order.Queued, base.Add(time.Minute))
	first := suite.createTestEntry(orderID, order.Created, order.Paid, base)
	suite.Require().NoError(suite.repository.Append(ctx, second))
	suite.Require().NoError(suite.repository.Append(ctx, first))

	// Another order's entries must not leak in.
	other := suite.createTestEntry(kernel.NewUUID(), order.Created, order.Paid, base)
	suite.Require().NoError(suite.repository.Append(ctx, other))

	entries, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.Equal(order.Created, entries[0].PreviousState())
	suite.Equal(order.Queued, entries[1].NewState())
}

func (suite *TimelineRepositoryIntegrationTestSuite) TestGetAllForOrder_NoEntries_ReturnsEmptySlice() {
	entries, err := suite.repository.GetAllForOrder(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func TestTimelineRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TimelineRepositoryIntegrationTestSuite))
}
