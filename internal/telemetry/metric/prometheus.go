// Package metric provides Prometheus metrics for fontsession.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fontsession"

// Save results.
const (
	SaveWritten = "written"
	SaveSkipped = "skipped"
	SaveFailed  = "failed"
)

// Load results.
const (
	LoadRestored  = "restored"
	LoadNoSession = "no_session"
	LoadSkipped   = "skipped"
)

// Registry holds all application metrics.
type Registry struct {
	// Save metrics
	SaveTriggers  prometheus.Counter
	SavesTotal    *prometheus.CounterVec
	SaveDuration  prometheus.Histogram
	DocumentBytes prometheus.Gauge

	// Load metrics
	LoadsTotal      *prometheus.CounterVec
	GlyphsRestored  prometheus.Counter
	EntitiesDropped *prometheus.CounterVec
}

// NewRegistry creates the metrics and registers them with reg.
// A nil reg leaves the metrics unregistered, which is convenient in tests.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		SaveTriggers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "save_triggers_total",
			Help:      "Save triggers received, before debouncing",
		}),
		SavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "saves_total",
			Help:      "Session saves by result",
		}, []string{"result"}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "save_duration_seconds",
			Help:      "Time to encode and write the session document",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		DocumentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "document_bytes",
			Help:      "Size of the last written session document",
		}),
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "loads_total",
			Help:      "Session restores by result",
		}, []string{"result"}),
		GlyphsRestored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "glyphs_restored_total",
			Help:      "Glyph snapshots applied to the live model",
		}),
		EntitiesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "entities_dropped_total",
			Help:      "Stored fonts and glyphs skipped during restore, by reason code",
		}, []string{"code"}),
	}

	if reg != nil {
		reg.MustRegister(
			r.SaveTriggers,
			r.SavesTotal,
			r.SaveDuration,
			r.DocumentBytes,
			r.LoadsTotal,
			r.GlyphsRestored,
			r.EntitiesDropped,
		)
	}

	return r
}
