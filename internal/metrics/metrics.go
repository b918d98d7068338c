// Package metrics defines the planner's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "taskplanner"

const (
	LabelStatus = "status"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

var Tasks = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name:      "tasks",
		Help:      "Current tasks",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var Subscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      "subscribers",
		Help:      "Confirmed reminder subscribers",
		Namespace: Namespace,
	},
)

var RemindersSent = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "reminders_sent_total",
		Help:      "Reminder emails sent",
		Namespace: Namespace,
	},
)

var ReminderErrors = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "reminder_errors_total",
		Help:      "Reminder emails that failed to send",
		Namespace: Namespace,
	},
)

var VerificationEmailsSent = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "verification_emails_sent_total",
		Help:      "Verification emails sent",
		Namespace: Namespace,
	},
)

// ObserveTasks updates the task gauges from the current counts.
func ObserveTasks(pending, completed int) {
	Tasks.WithLabelValues(StatusPending).Set(float64(pending))
	Tasks.WithLabelValues(StatusCompleted).Set(float64(completed))
}
