package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StalledOrderMonitorJob periodically reports orders stuck in a waiting
// status. A stalled order usually means a validator or allocator response
// was lost, so the job surfaces them for operators instead of retrying
// silently.
type StalledOrderMonitorJob struct {
	handler   queries.GetStalledOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStalledOrderMonitorJob creates a job that reports orders whose waiting
// status is older than threshold.
func NewStalledOrderMonitorJob(
	handler queries.GetStalledOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StalledOrderMonitorJob {
	return &StalledOrderMonitorJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stalled_order_monitor_job"),
	}
}

// Start begins the stalled order monitor to run every minute.
func (j *StalledOrderMonitorJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStalledOrdersQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stalled order monitor misconfigured",
				"threshold", j.threshold, "error", queryErr)
			return
		}

		stalled, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stalled order monitor failed", "error", handleErr)
			return
		}

		for _, o := range stalled {
			j.logger.WarnContext(ctx, "Order is stalled",
				"orderId", o.ID.String(),
				"status", o.Status,
				"waitingSince", o.UpdatedAt,
				"waitingFor", time.Since(o.UpdatedAt).Round(time.Second))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled order monitor started (running every minute)")
	return nil
}

// Stop stops the stalled order monitor.
func (j *StalledOrderMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled order monitor stopped")
}
