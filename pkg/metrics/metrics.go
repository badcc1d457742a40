package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	MaterializedTasks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "materialized_habit_tasks_total",
			Help: "Habit task rows inserted by the daily materializer",
		},
	)

	StreakComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_computations_total",
			Help: "Streak engine runs by flavor",
		},
		[]string{"flavor"},
	)

	SchemaInitRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schema_init_retries_total",
			Help: "Failed lazy database initializations that were retried",
		},
	)
)
