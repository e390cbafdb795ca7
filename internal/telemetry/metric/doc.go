// Package metric provides Prometheus metrics for fontsession.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: session counters and histograms
//   - collector.go: a collector sampling store state at scrape time
//   - dump.go: text exposition for the CLI
//
// A process using the CLI has no scrape endpoint; metrics are dumped on exit
// when enabled in configuration.
package metric
