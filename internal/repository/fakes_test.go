package repository

import (
	"context"
	"sync"
	"time"

	"SHT20Monitor.influxDB/internal/models"
)

type stubClient struct {
	mu         sync.Mutex
	rows       []models.RawRow
	err        error
	rangeCalls int
}

func (s *stubClient) FetchLatest(ctx context.Context) ([]models.RawRow, error) {
	return s.rows, s.err
}

func (s *stubClient) FetchRange(ctx context.Context, r models.TimeRange) ([]models.RawRow, error) {
	s.mu.Lock()
	s.rangeCalls++
	s.mu.Unlock()
	return s.rows, s.err
}

func (s *stubClient) Ping(ctx context.Context) error { return nil }
func (s *stubClient) Close()                         {}

type memoryCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}
