package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"SHT20Monitor.influxDB/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromMetricsCountsStatuses(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMetrics(reg, func() int { return 7 })

	s := models.NewSample(22.5, 60, "10:00:01")
	m.Publish(models.Status{Kind: models.StatusFreshData, Sample: &s})
	m.Publish(models.Status{Kind: models.StatusNoData})
	m.Publish(models.Status{Kind: models.StatusNoData})
	m.Publish(models.Status{Kind: models.StatusHistoricalEmpty})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.counters[string(models.StatusFreshData)]))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.counters[string(models.StatusNoData)]))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.counters[string(models.StatusHistoricalLoaded)]))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.counters[string(models.StatusHistoricalEmpty)]))
	assert.Equal(t, 22.5, testutil.ToFloat64(m.gauges["temperature"]))
	assert.Equal(t, 60.0, testutil.ToFloat64(m.gauges["humidity"]))

	expected := `
# HELP sht20_window_length Samples currently held in the rolling window.
# TYPE sht20_window_length gauge
sht20_window_length 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sht20_window_length"))
}

func TestPromMetricsObservesQueries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMetrics(reg, func() int { return 0 })

	m.ObserveQuery("latest", 20*time.Millisecond, nil)
	m.ObserveQuery("latest", 30*time.Millisecond, errors.New("timeout"))
	m.ObserveQuery("range", time.Second, nil)

	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("latest")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.failures.WithLabelValues("range")))
}
