package service

import (
	"context"
	"sync"
	"time"

	"SHT20Monitor.influxDB/internal/models"
)

type fetchResult struct {
	rows []models.RawRow
	err  error
}

// scriptedClient returns queued results in order, repeating the last one.
type scriptedClient struct {
	mu     sync.Mutex
	latest []fetchResult
	ranged fetchResult
	calls  int
	ctxs   []context.Context
}

func (c *scriptedClient) FetchLatest(ctx context.Context) ([]models.RawRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctxs = append(c.ctxs, ctx)
	i := min(c.calls, len(c.latest)-1)
	c.calls++
	return c.latest[i].rows, c.latest[i].err
}

func (c *scriptedClient) FetchRange(ctx context.Context, r models.TimeRange) ([]models.RawRow, error) {
	return c.ranged.rows, c.ranged.err
}

func (c *scriptedClient) Ping(ctx context.Context) error { return nil }
func (c *scriptedClient) Close()                         {}

// fakeSleeper records requested delays and cancels the run after limit sleeps.
type fakeSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
	limit  int
	cancel context.CancelFunc
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	if len(s.delays) >= s.limit {
		s.cancel()
		return ctx.Err()
	}
	return nil
}

type sinkRecorder struct {
	mu       sync.Mutex
	statuses []models.Status
}

func (r *sinkRecorder) Publish(s models.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *sinkRecorder) kinds() []models.StatusKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.StatusKind, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, s.Kind)
	}
	return out
}

func pair(hms string, temp, hum float64) []models.RawRow {
	ts := "2024-05-01T" + hms + ".000000000Z"
	return []models.RawRow{
		{Timestamp: ts, Field: models.FieldTemperature, Value: temp},
		{Timestamp: ts, Field: models.FieldHumidity, Value: hum},
	}
}
