// Package metrics counts scan work on a private Prometheus registry and can
// dump it in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trscan/internal/engine"
)

// Metrics holds the scan collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	reg *prometheus.Registry

	records     prometheus.Counter
	bases       prometheus.Counter
	repeats     *prometheus.CounterVec
	covered     prometheus.Counter
	failures    prometheus.Counter
	scanSeconds prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trscan", Name: "records_scanned_total",
			Help: "FASTA records scanned.",
		}),
		bases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trscan", Name: "bases_scanned_total",
			Help: "Bases scanned across all records.",
		}),
		repeats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trscan", Name: "repeats_found_total",
			Help: "Tandem repeats reported, by period class.",
		}, []string{"period_class"}),
		covered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trscan", Name: "repeat_bases_total",
			Help: "Bases covered by reported repeats.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trscan", Name: "input_errors_total",
			Help: "Inputs that could not be read.",
		}),
		scanSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trscan", Name: "record_scan_seconds",
			Help:    "Wall time spent scanning one record.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	m.reg.MustRegister(m.records, m.bases, m.repeats, m.covered, m.failures, m.scanSeconds)
	return m
}

// PeriodClass buckets a period into the conventional repeat classes.
func PeriodClass(period int) string {
	switch {
	case period <= 6:
		return "micro"
	case period <= 100:
		return "mini"
	default:
		return "macro"
	}
}

// ObserveRecord records one finished scan.
func (m *Metrics) ObserveRecord(rec engine.Record, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.records.Inc()
	m.bases.Add(float64(rec.Length))
	m.covered.Add(float64(rec.CoveredBases()))
	for _, r := range rec.Repeats {
		m.repeats.WithLabelValues(PeriodClass(r.PeriodSize)).Inc()
	}
	m.scanSeconds.Observe(elapsed.Seconds())
}

// ObserveInputError counts one unreadable input.
func (m *Metrics) ObserveInputError() {
	if m == nil {
		return
	}
	m.failures.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteFile writes all metrics to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
