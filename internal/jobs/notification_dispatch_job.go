package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob pumps the notification outbox on a schedule.
// Each run hands at most one batch of pending and retryable entries to the
// SMS channel.
type NotificationDispatchJob struct {
	handler   commands.DispatchNotificationsCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates a job that dispatches outbox
// notifications. The schedule is a six-field cron expression with seconds
// resolution.
func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the scheduled outbox pumping.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job misconfigured", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
			return
		}

		metrics.NotificationsDispatchedTotal.WithLabelValues("sent").Add(float64(result.Sent))
		metrics.NotificationsDispatchedTotal.WithLabelValues("failed").Add(float64(result.Failed))

		if result.Sent > 0 || result.Failed > 0 {
			j.logger.InfoContext(ctx, "Notification outbox pumped",
				"sent", result.Sent, "failed", result.Failed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop stops the scheduled outbox pumping.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
