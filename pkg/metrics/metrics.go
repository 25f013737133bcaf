package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	AssistantCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_call_latency_ms",
			Help:    "Assistant API call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"endpoint", "status"},
	)

	RecordsProvisionedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_records_provisioned_count",
			Help: "Total number of tracking records created by the provisioner",
		},
		[]string{"kind"}, // kind: vaccination, milestone
	)

	ChatAnswerCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_answer_count",
			Help: "Total number of chat answers served",
		},
		[]string{"source"}, // source: canned, model, fallback
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func RecordAssistantCallLatency(endpoint, status string, duration time.Duration) {
	AssistantCallLatency.WithLabelValues(endpoint, status).Observe(float64(duration.Milliseconds()))
}

func IncrementRecordsProvisioned(kind string, n int) {
	RecordsProvisionedCount.WithLabelValues(kind).Add(float64(n))
}

func IncrementChatAnswer(source string) {
	ChatAnswerCount.WithLabelValues(source).Inc()
}
