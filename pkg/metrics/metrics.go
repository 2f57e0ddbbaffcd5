package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

// Metrics holds all prometheus collectors for the service
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// MongoDB
	MongoOperationsTotal   *prometheus.CounterVec
	MongoOperationDuration *prometheus.HistogramVec

	// Kafka
	KafkaPublishTotal    *prometheus.CounterVec
	KafkaPublishDuration *prometheus.HistogramVec

	// Circuit breaker
	CircuitBreakerState *prometheus.GaugeVec

	// Business
	TasksCreatedTotal     *prometheus.CounterVec
	TasksCompletedTotal   prometheus.Counter
	TasksDeletedTotal     prometheus.Counter
	PalletsReservedTotal  prometheus.Counter
	BatchesReleasedTotal  prometheus.Counter
	SequenceFallbackTotal prometheus.Counter
}

// NewMetrics registers and returns the service metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		MongoOperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mongodb_operations_total",
			Help:      "Total number of MongoDB operations",
		}, []string{"collection", "operation", "status"}),

		MongoOperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mongodb_operation_duration_seconds",
			Help:      "MongoDB operation latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"collection", "operation"}),

		KafkaPublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka publish attempts",
		}, []string{"topic", "event_type", "status"}),

		KafkaPublishDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_duration_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"topic"}),

		CircuitBreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),

		TasksCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Total number of movement tasks created",
		}, []string{"task_type"}),

		TasksCompletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Total number of movement tasks completed",
		}),

		TasksDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_deleted_total",
			Help:      "Total number of movement tasks deleted",
		}),

		PalletsReservedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pallets_reserved_total",
			Help:      "Total number of pallets reserved on truck inventories",
		}),

		BatchesReleasedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_released_total",
			Help:      "Total number of batches released from truck inventories",
		}),

		SequenceFallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequence_fallback_total",
			Help:      "Times the production sequence fell back to a timestamp value",
		}),
	}
}

// ObserveHTTPRequest records a completed HTTP request
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveMongoOperation records a completed MongoDB operation
func (m *Metrics) ObserveMongoOperation(collection, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.MongoOperationsTotal.WithLabelValues(collection, operation, status).Inc()
	m.MongoOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

// ObserveKafkaPublish records a publish attempt
func (m *Metrics) ObserveKafkaPublish(topic, eventType string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.KafkaPublishTotal.WithLabelValues(topic, eventType, status).Inc()
	m.KafkaPublishDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

// SetCircuitBreakerState records a breaker state transition
func (m *Metrics) SetCircuitBreakerState(name string, state float64) {
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}
