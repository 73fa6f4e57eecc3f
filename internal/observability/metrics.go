package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DisplayUpdates counts display_update emissions by primary payload kind.
	DisplayUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizshow_display_updates_total",
		Help: "Total display_update events emitted",
	}, []string{"kind"})

	// SessionTransitions counts lifecycle transitions (started, stopped, completed).
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizshow_session_transitions_total",
		Help: "Total session lifecycle transitions",
	}, []string{"transition"})

	// OpenSessions is the number of sessions currently open.
	OpenSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quizshow_open_sessions",
		Help: "Number of open show sessions",
	})

	// ViewerConnections is the number of connected viewer sockets.
	ViewerConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quizshow_viewer_connections",
		Help: "Number of connected viewer websockets",
	})

	// CommandsTotal counts admin commands by name and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizshow_commands_total",
		Help: "Total admin commands processed",
	}, []string{"command", "outcome"})

	// AggregationFailures counts response feed fetch failures.
	AggregationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizshow_aggregation_failures_total",
		Help: "Total failed response aggregation fetches",
	})

	// PersistenceFailures counts failed game state writes.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizshow_persistence_failures_total",
		Help: "Total failed or dropped game state writes",
	}, []string{"reason"})

	// BackpressureDrops counts events dropped for slow subscribers.
	BackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizshow_backpressure_drops_total",
		Help: "Total events dropped because a subscriber buffer was full",
	})
)
