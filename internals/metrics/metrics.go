package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	NotificationsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cems_notifications_written_total", Help: "Total outbox notification rows written"},
	)
	MailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cems_mails_sent_total", Help: "Total batched notification mails sent"},
	)
	MailsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cems_mails_failed_total", Help: "Total notification mails that failed to send"},
	)
	RemindersDispatched = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cems_reminders_dispatched_total", Help: "Total due reminders dispatched by the scheduler"},
	)
	ReminderTickErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cems_reminder_tick_errors_total", Help: "Total reminder scheduler ticks that hit an error"},
	)
)

func Register() {
	prometheus.MustRegister(
		NotificationsWritten,
		MailsSent,
		MailsFailed,
		RemindersDispatched,
		ReminderTickErrors,
	)
}
