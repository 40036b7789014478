package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_runs_started_total",
			Help: "Total newsletter runs started",
		},
	)

	RunsSucceeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_runs_succeeded_total",
			Help: "Total newsletter runs completed successfully",
		},
	)

	RunsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_runs_failed_total",
			Help: "Total newsletter runs ending in failure",
		},
	)

	FetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "news_fetch_failures_total",
			Help: "Total per-symbol news fetch failures (isolated, non-fatal)",
		},
	)

	StepsReplayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workflow_steps_replayed_total",
			Help: "Total steps skipped because a persisted result existed",
		},
	)

	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total newsletter emails sent",
		},
	)

	EmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "email_failures_total",
			Help: "Total failed newsletter emails",
		},
	)
)

func Init() {
	prometheus.MustRegister(RunsStarted)
	prometheus.MustRegister(RunsSucceeded)
	prometheus.MustRegister(RunsFailed)
	prometheus.MustRegister(FetchFailures)
	prometheus.MustRegister(StepsReplayed)
	prometheus.MustRegister(EmailsSent)
	prometheus.MustRegister(EmailFailures)
}
