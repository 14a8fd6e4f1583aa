package repository

import (
	"context"
	"time"

	"SHT20Monitor.influxDB/internal/models"
)

// QueryObserver receives the duration and outcome of every query.
type QueryObserver interface {
	ObserveQuery(op string, d time.Duration, err error)
}

// Instrumented reports query latency to an observer.
type Instrumented struct {
	QueryClient
	observer QueryObserver
}

// NewInstrumented wraps inner.
func NewInstrumented(inner QueryClient, observer QueryObserver) *Instrumented {
	return &Instrumented{QueryClient: inner, observer: observer}
}

func (i *Instrumented) FetchLatest(ctx context.Context) ([]models.RawRow, error) {
	start := time.Now()
	rows, err := i.QueryClient.FetchLatest(ctx)
	i.observer.ObserveQuery(opLatest, time.Since(start), err)
	return rows, err
}

func (i *Instrumented) FetchRange(ctx context.Context, r models.TimeRange) ([]models.RawRow, error) {
	start := time.Now()
	rows, err := i.QueryClient.FetchRange(ctx, r)
	i.observer.ObserveQuery(opRange, time.Since(start), err)
	return rows, err
}
