package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// productsSynced tracks products written per run.
	productsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_products_synced_total",
		Help: "Total number of product records upserted",
	})

	// variantsSynced tracks variants written per run.
	variantsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_variants_synced_total",
		Help: "Total number of variant records upserted",
	})

	// historyAppended tracks history snapshot rows written.
	historyAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_history_rows_total",
		Help: "Total number of variant history snapshots appended",
	})

	// categoryFetchFailures tracks contained per-category fetch failures.
	categoryFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_category_fetch_failures_total",
		Help: "Total number of category fetches that yielded no data",
	}, []string{"category"})

	// runs tracks terminal run outcomes.
	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_runs_total",
		Help: "Total number of crawler runs by outcome",
	}, []string{"status"}) // status: success, noop, failed

	// runDuration tracks end-to-end run time.
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crawler_run_duration_seconds",
		Help:    "End-to-end duration of a crawler run",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})
)

// RecordSynced registers the entity counts of a completed persist pass
func RecordSynced(products, variants, history int) {
	productsSynced.Add(float64(products))
	variantsSynced.Add(float64(variants))
	historyAppended.Add(float64(history))
}

// RecordCategoryFetchFailure registers a contained category fetch failure
func RecordCategoryFetchFailure(category string) {
	categoryFetchFailures.WithLabelValues(category).Inc()
}

// RecordRun registers a terminal run outcome and its duration
func RecordRun(status string, elapsed time.Duration) {
	runs.WithLabelValues(status).Inc()
	runDuration.Observe(elapsed.Seconds())
}
