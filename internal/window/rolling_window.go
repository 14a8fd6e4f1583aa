package window

import (
	"sync"

	"SHT20Monitor.influxDB/internal/models"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 50

type entry struct {
	temperature float64
	humidity    float64
	label       string
}

// RollingWindow is a fixed-capacity FIFO of complete samples.
type RollingWindow struct {
	mu       sync.RWMutex
	entries  []entry
	head     int // index of the oldest entry
	size     int
	capacity int
}

// New creates an empty window holding at most capacity samples.
func New(capacity int) *RollingWindow {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &RollingWindow{
		entries:  make([]entry, capacity),
		capacity: capacity,
	}
}

// Append adds a sample, evicting the oldest one when the window is full.
// Incomplete samples are ignored and false is returned.
func (w *RollingWindow) Append(s models.Sample) bool {
	if !s.Complete() {
		return false
	}
	e := entry{temperature: *s.Temperature, humidity: *s.Humidity, label: s.Label}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size < w.capacity {
		w.entries[(w.head+w.size)%w.capacity] = e
		w.size++
		return true
	}
	w.entries[w.head] = e
	w.head = (w.head + 1) % w.capacity
	return true
}

// ReplaceAll discards the current content and installs the most recent
// capacity complete samples from samples, in order.
func (w *RollingWindow) ReplaceAll(samples []models.Sample) {
	fresh := make([]entry, 0, len(samples))
	for _, s := range samples {
		if s.Complete() {
			fresh = append(fresh, entry{temperature: *s.Temperature, humidity: *s.Humidity, label: s.Label})
		}
	}
	w.install(fresh)
}

// ReplaceSeries is ReplaceAll for column-shaped input.
func (w *RollingWindow) ReplaceSeries(s models.Series) {
	n := min(len(s.Temperature), len(s.Humidity), len(s.Labels))
	fresh := make([]entry, n)
	for i := range fresh {
		fresh[i] = entry{temperature: s.Temperature[i], humidity: s.Humidity[i], label: s.Labels[i]}
	}
	w.install(fresh)
}

func (w *RollingWindow) install(fresh []entry) {
	if len(fresh) > w.capacity {
		fresh = fresh[len(fresh)-w.capacity:]
	}

	entries := make([]entry, w.capacity)
	copy(entries, fresh)

	w.mu.Lock()
	w.entries = entries
	w.head = 0
	w.size = len(fresh)
	w.mu.Unlock()
}

// Snapshot returns copies of the three columns, oldest first.
func (w *RollingWindow) Snapshot() models.Series {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := models.Series{
		Temperature: make([]float64, w.size),
		Humidity:    make([]float64, w.size),
		Labels:      make([]string, w.size),
	}
	for i := 0; i < w.size; i++ {
		e := w.entries[(w.head+i)%w.capacity]
		out.Temperature[i] = e.temperature
		out.Humidity[i] = e.humidity
		out.Labels[i] = e.label
	}
	return out
}

// Len returns the number of samples currently held.
func (w *RollingWindow) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

// Cap returns the window capacity.
func (w *RollingWindow) Cap() int {
	return w.capacity
}
