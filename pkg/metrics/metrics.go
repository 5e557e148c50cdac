package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// result is one of success, validation_failed, duplicate, not_configured, error
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Total number of waitlist submissions by result",
		},
		[]string{"result"},
	)

	ChannelOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_channel_outcomes_total",
			Help: "Outcomes of side-effect channels (store, email, alert, sms)",
		},
		[]string{"channel", "outcome"},
	)

	OutboundDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waitlist_outbound_duration_seconds",
			Help:    "Duration of outbound calls to the store and email provider",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"target"},
	)

	StatsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_stats_requests_total",
			Help: "Total number of waitlist stats reads by result",
		},
		[]string{"result"},
	)
)
