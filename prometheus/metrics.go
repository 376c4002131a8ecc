package prometheus

import (
	"sync"
	"time"

	"chatbot-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Chat metrics
	ChatIntentsCounter       *prometheus.CounterVec
	ChatEntityMissingCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Dataset size as loaded at startup
	DatasetRecordsGauge *prometheus.GaugeVec

	initOnce sync.Once
)

// InitMetrics initializes Prometheus metrics with configuration.
// Only the first call registers collectors.
func InitMetrics(config *config.Config) {
	initOnce.Do(func() {
		prefix := config.Metrics.Prefix

		ChatIntentsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_chat_intents_total",
				Help: "Total number of chat messages by classified intent",
			},
			[]string{"intent"},
		)

		ChatEntityMissingCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_chat_entity_missing_total",
				Help: "Total number of messages whose intent needed an entity but none was found",
			},
			[]string{"intent"},
		)

		DbOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of dataset operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		DatasetRecordsGauge = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_records",
				Help: "Number of records loaded into the dataset at startup",
			},
			[]string{"kind"},
		)
	})
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordIntent increments the counter for a classified intent
func RecordIntent(intent string) {
	if ChatIntentsCounter == nil {
		return
	}
	ChatIntentsCounter.WithLabelValues(intent).Inc()
}

// RecordEntityMissing counts an entity-driven intent that had nothing to look up
func RecordEntityMissing(intent string) {
	if ChatEntityMissingCounter == nil {
		return
	}
	ChatEntityMissingCounter.WithLabelValues(intent).Inc()
}

// SetDatasetRecords updates the dataset size gauge
func SetDatasetRecords(kind string, count int) {
	if DatasetRecordsGauge == nil {
		return
	}
	DatasetRecordsGauge.WithLabelValues(kind).Set(float64(count))
}
