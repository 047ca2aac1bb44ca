package provisioning

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Phase results recorded in metrics.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics collects the metrics of one CLI run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.HistogramVec
	stackEvents   *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// NewMetrics returns empty run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "valheimctl",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 3, 10), // 100ms to ~30min
			},
			[]string{"phase", "result"},
		),
		stackEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "valheimctl",
				Name:      "stack_events_total",
				Help:      "CloudFormation stack events observed by status",
			},
			[]string{"status"},
		),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "valheimctl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}
	m.registry.MustRegister(m.phaseDuration, m.stackEvents, m.lastSuccess)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordPhase(phase string, err error, seconds float64) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	m.phaseDuration.WithLabelValues(phase, result).Observe(seconds)
}

func (m *Metrics) recordStackEvent(status string) {
	m.stackEvents.WithLabelValues(status).Inc()
}

func (m *Metrics) recordSuccess() {
	m.lastSuccess.SetToCurrentTime()
}

// WriteToTextfile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
