package jobs

import (
	"context"
	"log/slog"

	"ecshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// dispatchBatchLimit caps how many pending notifications one job run claims.
const dispatchBatchLimit = 50

// NotificationDispatchJob periodically drains pending order notifications
// through the configured sender.
type NotificationDispatchJob struct {
	handler commands.DispatchNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationDispatchJob creates a job that dispatches pending
// notifications every 30 seconds.
func NewNotificationDispatchJob(handler commands.DispatchNotificationsCommandHandler, logger *slog.Logger) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the dispatch schedule.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchNotificationsCommand(dispatchBatchLimit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch command rejected", "error", err)
			return
		}

		sent, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
			return
		}

		if sent > 0 {
			j.logger.InfoContext(ctx, "Dispatched pending notifications", "sent", sent)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every 30 seconds)")
	return nil
}

// Stop stops the dispatch schedule.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
