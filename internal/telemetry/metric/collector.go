// Package metric provides Prometheus metrics for fontsession.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreState is sampled by StoreCollector on every scrape.
type StoreState interface {
	// Available reports whether the session store passed its probe.
	Available() bool
	// Engine names the backend in use.
	Engine() string
}

// StoreCollector exposes the session store state as a gauge.
type StoreCollector struct {
	state     StoreState
	available *prometheus.Desc
}

// NewCollector creates a collector reading from state.
func NewCollector(state StoreState) *StoreCollector {
	return &StoreCollector{
		state: state,
		available: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "available"),
			"1 when the session store passed its availability probe",
			[]string{"engine"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	v := 0.0
	if c.state.Available() {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, v, c.state.Engine())
}
