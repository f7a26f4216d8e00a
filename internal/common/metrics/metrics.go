// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// MenuResolutions counts engine resolutions by role and by whether a
	// seasonal menu, the base catalog, or the empty-seasonal fallback was shown.
	MenuResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_resolutions_total",
			Help: "Total number of menu availability resolutions",
		},
		[]string{"role", "selection"},
	)

	MenuItemsPresented = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menu_items_presented",
			Help:    "Number of items in a presented catalog",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"role"},
	)

	StockToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_toggles_total",
			Help: "Total number of stock toggles by resulting state",
		},
		[]string{"in_stock"},
	)

	SeasonalResolverCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seasonal_resolver_cache_total",
			Help: "Seasonal resolver memo lookups by result",
		},
		[]string{"result"},
	)
)
