package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_EphemerisLookup(t *testing.T) {
	m := NewMetricsForTesting()
	m.EphemerisLookup(true)
	m.EphemerisLookup(true)
	m.EphemerisLookup(false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.EphemerisCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EphemerisCache.WithLabelValues("miss")), 0)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetricsForTesting()
	m.RecordsLoaded.Add(3)
	m.RecordsDropped.WithLabelValues("missing_field").Inc()
	m.TestsRun.WithLabelValues("time_of_day_proportions", "valid").Inc()

	path := filepath.Join(t.TempDir(), "quake_eda.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "quake_eda_records_loaded_total 3")
	assert.Contains(t, out, `quake_eda_records_dropped_total{reason="missing_field"} 1`)
	assert.Contains(t, out, `quake_eda_tests_run_total{outcome="valid",test="time_of_day_proportions"} 1`)
}

func TestMetrics_GatherCount(t *testing.T) {
	m := NewMetricsForTesting()
	m.RecordsLoaded.Inc()
	m.StageDuration.WithLabelValues("load").Observe(0.2)

	n, err := testutil.GatherAndCount(m.gatherer, "quake_eda_records_loaded_total", "quake_eda_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
