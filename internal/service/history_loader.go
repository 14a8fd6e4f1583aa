package service

import (
	"context"
	"time"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/reconcile"
	"SHT20Monitor.influxDB/internal/repository"
	"SHT20Monitor.influxDB/internal/status"
	"github.com/google/uuid"
)

// Replacer is the write side of the window the history loader overwrites.
type Replacer interface {
	ReplaceSeries(s models.Series)
}

// HistoryLoader replaces the window with a queried time range on request.
type HistoryLoader struct {
	client repository.QueryClient
	window Replacer
	sink   status.Sink
	now    func() time.Time
}

// NewHistoryLoader creates a new HistoryLoader.
func NewHistoryLoader(client repository.QueryClient, window Replacer, sink status.Sink) *HistoryLoader {
	return &HistoryLoader{
		client: client,
		window: window,
		sink:   sink,
		now:    time.Now,
	}
}

// Load fetches and reconciles r. A non-empty result replaces the window; an
// empty result or a failed query leaves the window as it was.
func (h *HistoryLoader) Load(ctx context.Context, r models.TimeRange) models.Status {
	st := models.Status{LoadID: uuid.NewString(), At: h.now()}

	series, err := h.Fetch(ctx, r)
	switch {
	case err != nil:
		st.Kind = models.StatusHistoricalEmpty
		st.Err = err.Error()
	case series.Len() == 0:
		st.Kind = models.StatusHistoricalEmpty
	default:
		h.window.ReplaceSeries(series)
		st.Kind = models.StatusHistoricalLoaded
		st.Count = series.Len()
	}

	h.sink.Publish(st)
	return st
}

// Fetch returns the reconciled range without touching the window.
func (h *HistoryLoader) Fetch(ctx context.Context, r models.TimeRange) (models.Series, error) {
	rows, err := h.client.FetchRange(ctx, r)
	if err != nil {
		return models.Series{}, err
	}
	return reconcile.Reconcile(rows), nil
}
