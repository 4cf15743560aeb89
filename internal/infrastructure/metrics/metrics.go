package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Journal metrics
	EntriesCreated  prometheus.Counter
	EntriesReversed prometheus.Counter
	EntryDuration   prometheus.Histogram
	EntryErrors     *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Allocation metrics
	AllocationsCreated prometheus.Counter
	AllocationStrategy *prometheus.CounterVec
	AllocationErrors   *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Journal metrics
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hausledger_entries_created_total",
			Help: "Total number of journal entries created",
		}),
		EntriesReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hausledger_entries_reversed_total",
			Help: "Total number of journal entries reversed",
		}),
		EntryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hausledger_entry_duration_seconds",
			Help:    "Duration of journal entry operations",
			Buckets: prometheus.DefBuckets,
		}),
		EntryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_entry_errors_total",
				Help: "Total number of journal entry errors by type",
			},
			[]string{"error_type"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hausledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Allocation metrics
		AllocationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hausledger_allocations_created_total",
			Help: "Total number of cost allocations created",
		}),
		AllocationStrategy: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_allocation_strategy_total",
				Help: "Total number of allocations by strategy",
			},
			[]string{"strategy"},
		),
		AllocationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_allocation_errors_total",
				Help: "Total number of allocation errors by type",
			},
			[]string{"error_type"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hausledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hausledger_db_query_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hausledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_redis_operations_total",
				Help: "Total number of Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hausledger_redis_errors_total",
				Help: "Total number of Redis errors",
			},
			[]string{"operation"},
		),
	}
}
