package api

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "jirani"

const (
	outcomeOK           = "ok"
	outcomeHTTPError    = "http_error"
	outcomeNetworkError = "network_error"
)

// Metrics counts API calls for the current process on a private registry so
// repeated wiring in tests never collides with the default one.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal labels:
	//   - method: HTTP method
	//   - route: path template, e.g. /products/seller/:id
	//   - outcome: ok, http_error or network_error
	RequestsTotal *prometheus.CounterVec

	RequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total API requests issued, by method, route and outcome.",
			},
			[]string{"method", "route", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request latency from send to body read.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) observe(method, route, outcome string, seconds float64) {
	if m == nil {
		return
	}

	m.RequestsTotal.WithLabelValues(method, route, outcome).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// LabelString renders labels as k="v" pairs sorted by key.
func (s Sample) LabelString() string {
	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"=\""+s.Labels[k]+"\"")
	}

	return strings.Join(parts, ",")
}

// Snapshot flattens counters and histogram count/sum into samples.
func (m *Metrics) Snapshot() ([]Sample, error) {
	if m == nil {
		return nil, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := labelMap(metric.GetLabel())
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				samples = append(samples, Sample{Name: family.GetName(), Labels: labels, Value: metric.GetCounter().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				samples = append(samples,
					Sample{Name: family.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: family.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}

	return samples, nil
}

func labelMap(pairs []*dto.LabelPair) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		out[pair.GetName()] = pair.GetValue()
	}

	return out
}
