package jobs

import (
	"context"
	"log/slog"
	"time"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultStallWindow is how long an order may sit with the generator or
// the delivery collaborator before it is considered stuck, unless
// configured otherwise.
const DefaultStallWindow = 30 * time.Minute

// StalledOrderJob flags orders stuck waiting on an external collaborator:
// REGENERATING orders the generator never answered and DELIVERING orders
// the delivery never confirmed. Detection is log-only; resolution stays an
// admin decision.
type StalledOrderJob struct {
	uowFactory  commands.OrderUoWFactory
	stallWindow time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStalledOrderJob creates a new job for flagging stalled orders. A
// non-positive stallWindow falls back to DefaultStallWindow.
func NewStalledOrderJob(
	uowFactory commands.OrderUoWFactory,
	stallWindow time.Duration,
	logger *slog.Logger,
) *StalledOrderJob {
	if stallWindow <= 0 {
		stallWindow = DefaultStallWindow
	}

	return &StalledOrderJob{
		uowFactory:  uowFactory,
		stallWindow: stallWindow,
		cron:        cron.New(),
		logger:      logger.With("component", "stalled_order_job"),
	}
}

// Start begins the stalled order job to run every five minutes.
func (j *StalledOrderJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stalled order job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled order job started (running every five minutes)")
	return nil
}

// Stop stops the stalled order job.
func (j *StalledOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled order job stopped")
}

func (j *StalledOrderJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	cutoff := time.Now().UTC().Add(-j.stallWindow)

	for _, status := range []order.Status{order.Regenerating, order.Delivering} {
		stuck, err := uow.OrderRepository().GetAllInStatus(ctx, status)
		if err != nil {
			return err
		}

		for _, aggregate := range stuck {
			if aggregate.UpdatedAt().After(cutoff) {
				continue
			}
			j.logger.WarnContext(ctx, "Order stalled past window",
				"order_id", aggregate.ID().String(),
				"status", status.String(),
				"stalled_since", aggregate.UpdatedAt(),
			)
		}
	}

	return nil
}
