package plugin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wippyai/wasm-bundler/placement"
)

// Metrics holds the pipeline's counters. All fields are optional from
// the plugin's point of view; construct with NewMetrics and pass via
// WithMetrics.
type Metrics struct {
	FilesLoaded       prometheus.Counter
	InlineDecisions   prometheus.Counter
	ExternalDecisions prometheus.Counter
	AssetBytes        prometheus.Counter
	Failures          prometheus.Counter
}

// NewMetrics creates and registers the pipeline counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FilesLoaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wasm_bundler",
			Name:      "files_loaded_total",
			Help:      "Number of .wasm modules turned into shims.",
		}),
		InlineDecisions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wasm_bundler",
			Name:      "inline_decisions_total",
			Help:      "Placement decisions that embedded the binary as a data URI.",
		}),
		ExternalDecisions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wasm_bundler",
			Name:      "external_decisions_total",
			Help:      "Placement decisions that emitted the binary as an asset.",
		}),
		AssetBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wasm_bundler",
			Name:      "asset_bytes_total",
			Help:      "Raw binary bytes registered as external assets.",
		}),
		Failures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wasm_bundler",
			Name:      "failures_total",
			Help:      "Per-file pipeline failures reported to the host.",
		}),
	}
}

func (m *Metrics) decided(d placement.Decision) {
	if d.External {
		m.ExternalDecisions.Inc()
	} else {
		m.InlineDecisions.Inc()
	}
}

func (m *Metrics) loaded(d placement.Decision, size int) {
	m.FilesLoaded.Inc()
	if d.External {
		m.AssetBytes.Add(float64(size))
	}
}

func (m *Metrics) failed() {
	m.Failures.Inc()
}
