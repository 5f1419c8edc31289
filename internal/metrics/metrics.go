// Package metrics exports engine counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/and161185/packtrip/internal/model"
)

const namespace = "packtrip"

// Metrics implements service.Recorder on a private registry.
type Metrics struct {
	reg        *prometheus.Registry
	reconciled prometheus.Counter
	flags      *prometheus.CounterVec
	states     *prometheus.CounterVec
	rpcs       *prometheus.CounterVec
}

// New registers all collectors, including the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_reconciled_total",
			Help:      "Packing records created by reconciliation.",
		}),
		flags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flag_writes_total",
			Help:      "Pick, pack and ready writes.",
		}, []string{"flag", "value"}),
		states: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Trip state writes by target state.",
		}, []string{"state"}),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Handled gRPC requests by method and code.",
		}, []string{"method", "code"}),
	}
	m.reg.MustRegister(
		m.reconciled, m.flags, m.states, m.rpcs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) RecordsReconciled(n int) {
	if n > 0 {
		m.reconciled.Add(float64(n))
	}
}

func (m *Metrics) FlagSet(f model.Flag, value bool) {
	v := "false"
	if value {
		v = "true"
	}
	m.flags.WithLabelValues(f.String(), v).Inc()
}

func (m *Metrics) StateChanged(to model.TripState) {
	m.states.WithLabelValues(to.String()).Inc()
}

// RPC counts one finished unary call.
func (m *Metrics) RPC(method, code string) {
	m.rpcs.WithLabelValues(method, code).Inc()
}
