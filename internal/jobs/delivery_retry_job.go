package jobs

import (
	"context"
	"errors"
	"log/slog"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DeliveryRetryJob re-dispatches orders whose delivery attempt failed.
// Runs every minute; each failed order gets one retry per run.
type DeliveryRetryJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.ApplyTransitionCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeliveryRetryJob creates a new job for retrying failed deliveries.
func NewDeliveryRetryJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.ApplyTransitionCommandHandler,
	logger *slog.Logger,
) *DeliveryRetryJob {
	return &DeliveryRetryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(),
		logger:     logger.With("component", "delivery_retry_job"),
	}
}

// Start begins the delivery retry job to run every minute.
func (j *DeliveryRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Delivery retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery retry job started (running every minute)")
	return nil
}

// Stop stops the delivery retry job.
func (j *DeliveryRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery retry job stopped")
}

func (j *DeliveryRetryJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()

	failed, err := uow.OrderRepository().GetAllInStatus(ctx, order.DeliveryFailed)
	if err != nil {
		return err
	}

	for _, aggregate := range failed {
		cmd, err := commands.NewApplyTransitionCommand(
			aggregate.ID(), order.ActionRetryDelivery, order.SystemAuto,
			"automatic delivery retry", "system", nil,
		)
		if err != nil {
			return err
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			// A concurrent admin action may have moved the order already;
			// the next run picks up whatever is still failed.
			if errors.Is(err, errs.ErrConcurrentModification) || errors.Is(err, errs.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Delivery retry failed",
				"order_id", aggregate.ID().String(), "error", err)
		}
	}

	return nil
}
