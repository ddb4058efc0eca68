package database

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SQLiteLatency is the duration of SQLite queries.
	SQLiteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_sqlite_latency",
			Help: "Duration of SQLite queries",
		},
		[]string{"query", "table"},
	)

	// SQLiteTotalRequests is the total number of SQLite requests.
	SQLiteTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_sqlite_total_requests",
			Help: "Total number of SQLite requests",
		},
		[]string{"query", "table"},
	)
)

// track starts the prometheus metrics for one query. The returned func stops the timer.
func track(query, table string) func() {
	SQLiteTotalRequests.WithLabelValues(query, table).Inc()
	t := prometheus.NewTimer(SQLiteLatency.WithLabelValues(query, table))
	return func() { t.ObserveDuration() }
}
