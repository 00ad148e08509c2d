package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderReminderJob periodically nudges farmers about orders that have
// been sitting in PENDING status past the grace period. Runs every five
// minutes; the reminder is read-only, so a missed tick loses nothing.
type PendingOrderReminderJob struct {
	handler   commands.RemindPendingOrdersCommandHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderReminderJob creates a job reminding farmers about stale
// pending orders older than the given duration.
func NewPendingOrderReminderJob(
	handler commands.RemindPendingOrdersCommandHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(),
		logger:    logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the reminder job to run every five minutes.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRemindPendingOrdersCommand(j.olderThan)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build reminder command", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order reminder job started (running every five minutes)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}
