// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. StalledOrderMonitorJob - Runs every minute to report orders stuck in a
// waiting status (VALIDATION_PENDING, ALLOCATION_PENDING, PENDING_INVENTORY)
// longer than the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(stalledOrdersHandler, 15*time.Minute, logger)
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
// The monitor only reports; it never mutates orders. Query failures are
// logged and retried on the next tick.
package jobs
