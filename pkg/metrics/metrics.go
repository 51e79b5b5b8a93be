package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of chat turns by detected intent and funnel rule",
		},
		[]string{"intent", "rule"},
	)

	ChatTurnsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_turns_failed_total",
			Help: "Total number of chat turns that failed and were discarded",
		},
	)

	FallbackIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_fallback_intents_total",
			Help: "Total number of turns classified with a fallback intent",
		},
		[]string{"intent"},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_stage_transitions_total",
			Help: "Total number of funnel stage changes",
		},
		[]string{"from", "to"},
	)

	QuotesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_quotes_completed_total",
			Help: "Total number of completed quote requests",
		},
	)

	LeadDispatchFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_dispatch_failed_total",
			Help: "Total number of lead hand-off failures by sink",
		},
		[]string{"sink"},
	)

	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_turn_duration_seconds",
			Help:    "Duration of one chat turn in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
)
