package metrics

import (
	"time"

	"SHT20Monitor.influxDB/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics turns status events and query observations into Prometheus series.
type PromMetrics struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	latency  *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewPromMetrics registers the collectors on reg. windowLen is sampled on every scrape.
func NewPromMetrics(reg prometheus.Registerer, windowLen func() int) *PromMetrics {
	fresh := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sht20_poll_fresh_total",
		Help: "Poll cycles that appended a complete sample.",
	})
	noData := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sht20_poll_no_data_total",
		Help: "Poll cycles that produced no complete sample.",
	})
	loaded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sht20_history_loaded_total",
		Help: "Historical loads that replaced the window.",
	})
	empty := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sht20_history_empty_total",
		Help: "Historical loads that found no data and left the window untouched.",
	})
	temperature := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sht20_temperature_celsius",
		Help: "Most recent polled temperature.",
	})
	humidity := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sht20_humidity_percent",
		Help: "Most recent polled relative humidity.",
	})
	windowGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sht20_window_length",
		Help: "Samples currently held in the rolling window.",
	}, func() float64 { return float64(windowLen()) })
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sht20_query_duration_seconds",
		Help:    "Duration of InfluxDB queries.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sht20_query_failures_total",
		Help: "InfluxDB queries that failed as a whole.",
	}, []string{"op"})

	reg.MustRegister(fresh, noData, loaded, empty, temperature, humidity, windowGauge, latency, failures)

	return &PromMetrics{
		counters: map[string]prometheus.Counter{
			string(models.StatusFreshData):        fresh,
			string(models.StatusNoData):           noData,
			string(models.StatusHistoricalLoaded): loaded,
			string(models.StatusHistoricalEmpty):  empty,
		},
		gauges: map[string]prometheus.Gauge{
			"temperature": temperature,
			"humidity":    humidity,
		},
		latency:  latency,
		failures: failures,
	}
}

func (p *PromMetrics) Publish(s models.Status) {
	if c, ok := p.counters[string(s.Kind)]; ok {
		c.Inc()
	}
	if s.Kind == models.StatusFreshData && s.Sample != nil && s.Sample.Complete() {
		p.gauges["temperature"].Set(*s.Sample.Temperature)
		p.gauges["humidity"].Set(*s.Sample.Humidity)
	}
}

func (p *PromMetrics) ObserveQuery(op string, d time.Duration, err error) {
	p.latency.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		p.failures.WithLabelValues(op).Inc()
	}
}
