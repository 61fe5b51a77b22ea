package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trscan/internal/engine"
)

func TestObserveRecord(t *testing.T) {
	m := New()
	m.ObserveRecord(engine.Record{Length: 100, Repeats: []engine.Repeat{
		{Start: 0, End: 10, PeriodSize: 2},
		{Start: 20, End: 60, PeriodSize: 20},
		{Start: 60, End: 100, PeriodSize: 200},
	}}, 5*time.Millisecond)
	m.ObserveRecord(engine.Record{Length: 50}, time.Millisecond)
	m.ObserveInputError()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.records))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.bases))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.covered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repeats.WithLabelValues("micro")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repeats.WithLabelValues("mini")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repeats.WithLabelValues("macro")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.scanSeconds))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRecord(engine.Record{Length: 1}, 0)
	m.ObserveInputError()
	assert.NoError(t, m.WriteFile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveRecord(engine.Record{Length: 42}, time.Millisecond)
	path := filepath.Join(t.TempDir(), "trscan.prom")
	require.NoError(t, m.WriteFile(path))
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "trscan_bases_scanned_total 42")
	assert.Contains(t, string(bs), "trscan_record_scan_seconds_bucket")
}

func TestPeriodClass(t *testing.T) {
	assert.Equal(t, "micro", PeriodClass(1))
	assert.Equal(t, "micro", PeriodClass(6))
	assert.Equal(t, "mini", PeriodClass(7))
	assert.Equal(t, "mini", PeriodClass(100))
	assert.Equal(t, "macro", PeriodClass(101))
}
