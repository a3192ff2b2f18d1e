package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	// RecordOperationResult counts one ledger operation by outcome.
	RecordOperationResult(operation, result string)
	// RecordTransaction records a committed balance change.
	RecordTransaction(txType string, amount int64)
	// RecordError counts a failed operation by error kind.
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationResult(string, string) {}
func (n *NoopMetricsCollector) RecordTransaction(string, int64)      {}
func (n *NoopMetricsCollector) RecordError(string, string)           {}

// PrometheusMetrics implements MetricsCollector on a Prometheus registry.
type PrometheusMetrics struct {
	operations *prometheus.CounterVec
	coinVolume *prometheus.CounterVec
	errors     *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger operations by operation and result.",
		}, []string{"operation", "result"}),
		coinVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_coins_total",
			Help: "Total coins moved, by transaction type.",
		}, []string{"type"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_errors_total",
			Help: "Ledger operation failures by operation and error kind.",
		}, []string{"operation", "error"}),
	}
}

func (m *PrometheusMetrics) RecordOperationResult(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *PrometheusMetrics) RecordTransaction(txType string, amount int64) {
	m.coinVolume.WithLabelValues(txType).Add(float64(amount))
}

func (m *PrometheusMetrics) RecordError(operation, errType string) {
	m.errors.WithLabelValues(operation, errType).Inc()
}
