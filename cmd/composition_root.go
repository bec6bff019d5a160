package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"compliance/internal/adapters/out/postgres"
	"compliance/internal/adapters/out/rabbit"
	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/application/usecases/queries"
	"compliance/internal/core/ports"
	"compliance/internal/jobs"

	"github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher ports.NotificationDispatcher
	generator  ports.DocumentGenerator
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	amqpChannel *amqp091.Channel,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: rabbit.NewRabbitNotificationDispatcher(amqpChannel, logger),
		generator:  rabbit.NewRabbitDocumentGenerator(amqpChannel, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateMarkPaidCommandHandler() commands.MarkPaidCommandHandler {
	return commands.NewMarkPaidCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateApproveVersionCommandHandler() commands.ApproveVersionCommandHandler {
	return commands.NewApproveVersionCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateRequestRegenerationCommandHandler() commands.RequestRegenerationCommandHandler {
	return commands.NewRequestRegenerationCommandHandler(c.fullUoWFactory(), c.generator, c.logger)
}

func (c *CompositionRoot) CreateRequestClientInfoCommandHandler() commands.RequestClientInfoCommandHandler {
	return commands.NewRequestClientInfoCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateSubmitClientResponseCommandHandler() commands.SubmitClientResponseCommandHandler {
	return commands.NewSubmitClientResponseCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateRecordGeneratedVersionCommandHandler() commands.RecordGeneratedVersionCommandHandler {
	return commands.NewRecordGeneratedVersionCommandHandler(c.fullUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPipelineSnapshotQueryHandler() queries.GetPipelineSnapshotQueryHandler {
	return queries.NewGetPipelineSnapshotQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersByStatusQueryHandler() queries.ListOrdersByStatusQueryHandler {
	return queries.NewListOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderUoWFactory(),
		c.CreateApplyTransitionCommandHandler(),
		c.stallWindow(),
		c.logger,
	)
}

// stallWindow parses the configured stall window, falling back to the job
// default when unset or malformed.
func (c *CompositionRoot) stallWindow() time.Duration {
	minutes, err := strconv.Atoi(c.configs.StallWindowMinutes)
	if err != nil || minutes <= 0 {
		return jobs.DefaultStallWindow
	}
	return time.Duration(minutes) * time.Minute
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
