package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalledOrderMonitorJob *StalledOrderMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	stalledOrdersHandler queries.GetStalledOrdersQueryHandler,
	stalledThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stalledOrderMonitorJob: NewStalledOrderMonitorJob(stalledOrdersHandler, stalledThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledOrderMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled order monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalledOrderMonitorJob.Stop()
}
