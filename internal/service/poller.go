package service

import (
	"context"
	"log"
	"math/rand"
	"time"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/reconcile"
	"SHT20Monitor.influxDB/internal/repository"
	"SHT20Monitor.influxDB/internal/status"
)

// Appender is the write side of the window the poller feeds.
type Appender interface {
	Append(s models.Sample) bool
}

// PollerOptions tunes the poll cadence.
type PollerOptions struct {
	Interval time.Duration
	// MaxBackoff enables jittered exponential backoff on consecutive query
	// failures when it exceeds Interval. Zero keeps a fixed cadence.
	MaxBackoff time.Duration
	Sleeper    Sleeper
}

// Poller reads the latest sample on a fixed cadence and appends it to the window.
type Poller struct {
	client     repository.QueryClient
	window     Appender
	sink       status.Sink
	interval   time.Duration
	maxBackoff time.Duration
	sleeper    Sleeper
	now        func() time.Time
	jitter     func() float64
}

// NewPoller creates a new Poller.
func NewPoller(client repository.QueryClient, window Appender, sink status.Sink, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Sleeper == nil {
		opts.Sleeper = RealSleeper{}
	}
	return &Poller{
		client:     client,
		window:     window,
		sink:       sink,
		interval:   opts.Interval,
		maxBackoff: opts.MaxBackoff,
		sleeper:    opts.Sleeper,
		now:        time.Now,
		jitter:     rand.Float64,
	}
}

// Run polls until ctx is cancelled. Cancellation is checked between cycles;
// a request already in flight finishes or times out on its own.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("Polling InfluxDB every %s", p.interval)
	failures := 0
	for {
		if ctx.Err() != nil {
			log.Println("Poller stopped")
			return
		}

		st := p.Cycle(ctx)
		if st.Err != "" {
			failures++
		} else {
			failures = 0
		}

		if err := p.sleeper.Sleep(ctx, p.delay(failures)); err != nil {
			log.Println("Poller stopped")
			return
		}
	}
}

// Cycle performs one fetch-reconcile-append step and publishes its outcome.
func (p *Poller) Cycle(ctx context.Context) models.Status {
	st := models.Status{At: p.now()}

	rows, err := p.client.FetchLatest(context.WithoutCancel(ctx))
	if err != nil {
		st.Kind = models.StatusNoData
		st.Err = err.Error()
		p.sink.Publish(st)
		return st
	}

	sample, ok := reconcile.Latest(rows)
	if !ok || !p.window.Append(sample) {
		st.Kind = models.StatusNoData
		p.sink.Publish(st)
		return st
	}

	st.Kind = models.StatusFreshData
	st.Sample = &sample
	p.sink.Publish(st)
	return st
}

// delay returns the wait before the next cycle. The first failure keeps the
// normal interval; each further consecutive failure doubles it, up to MaxBackoff.
func (p *Poller) delay(failures int) time.Duration {
	if p.maxBackoff <= p.interval || failures < 2 {
		return p.interval
	}

	d := p.interval
	for i := 1; i < failures && d < p.maxBackoff; i++ {
		d *= 2
	}
	d += time.Duration(p.jitter() * 0.2 * float64(d))
	return min(d, p.maxBackoff)
}
