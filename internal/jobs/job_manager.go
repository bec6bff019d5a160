package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"compliance/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryRetryJob *DeliveryRetryJob
	stalledOrderJob  *StalledOrderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	stallWindow time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryRetryJob: NewDeliveryRetryJob(uowFactory, applyTransitionHandler, logger),
		stalledOrderJob:  NewStalledOrderJob(uowFactory, stallWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery retry job: %w", err)
	}

	if err := jm.stalledOrderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deliveryRetryJob.Stop()
		return fmt.Errorf("failed to start stalled order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalledOrderJob.Stop()
	jm.deliveryRetryJob.Stop()
}
