// Package jobs provides scheduled background tasks for the workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the pipeline needs.
//
// # Available Jobs
//
// 1. DeliveryRetryJob - Runs every minute to retry orders whose delivery attempt failed
// 2. StalledOrderJob - Runs every five minutes to flag orders stuck waiting on the generator or the delivery collaborator
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, applyTransitionHandler, stallWindow, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The retry job skips orders another actor moved concurrently and retries them on the next run
// - The stalled-order job only reports; resolving a stuck order stays an admin decision
// - Failed job starts will stop any already running jobs
package jobs
