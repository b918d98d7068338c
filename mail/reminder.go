package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plannerhq/taskplanner/internal/metrics"
	"github.com/plannerhq/taskplanner/subscription"
	"github.com/plannerhq/taskplanner/task"
)

// Reminder sends the pending-task reminder to every subscriber. It is
// invoked by an external trigger (the remind command), not a scheduler.
type Reminder struct {
	Tasks         task.Repository
	Subscriptions subscription.Repository
	Composer      *Composer
	Sender        Sender
	Logger        *slog.Logger
}

// SendReminders composes and sends one reminder per subscriber. If no
// tasks are pending, nothing is sent to anyone, even when subscribers
// exist. A failed send is logged and counted but does not stop the
// remaining deliveries.
func (r *Reminder) SendReminders(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	subscribers := r.Subscriptions.Subscribers()
	metrics.Subscribers.Set(float64(len(subscribers)))
	if len(subscribers) == 0 {
		return nil
	}

	tasks := r.Tasks.List()
	pending := task.FilterPending(tasks)
	pendingCount, completedCount := task.CountByStatus(tasks)
	metrics.ObserveTasks(pendingCount, completedCount)
	if len(pending) == 0 {
		logger.Info("no pending tasks, skipping reminders")
		return nil
	}

	for _, email := range subscribers {
		body, err := r.Composer.ReminderMessage(email, pending)
		if err != nil {
			return fmt.Errorf("compose reminder: %w", err)
		}
		if err := r.Sender.Send(ctx, email, ReminderSubject, body); err != nil {
			logger.Warn("send reminder failed", "to", email, "error", err)
			metrics.ReminderErrors.Inc()
			continue
		}
		metrics.RemindersSent.Inc()
		logger.Info("reminder sent", "to", email, "pending_tasks", len(pending))
	}
	return nil
}
