package status

import (
	"log"
	"sync"

	"SHT20Monitor.influxDB/internal/models"
)

// Sink receives every outcome the acquisition core reports.
type Sink interface {
	Publish(s models.Status)
}

// Multi fans a status out to several sinks in order.
type Multi []Sink

func (m Multi) Publish(s models.Status) {
	for _, sink := range m {
		sink.Publish(s)
	}
}

// Recorder keeps the last status and a count per kind for the HTTP API.
type Recorder struct {
	mu     sync.RWMutex
	last   *models.Status
	counts map[models.StatusKind]int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[models.StatusKind]int)}
}

func (r *Recorder) Publish(s models.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &s
	r.counts[s.Kind]++
}

// Last returns the most recent status, if any.
func (r *Recorder) Last() (models.Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return models.Status{}, false
	}
	return *r.last, true
}

// Response builds the JSON body served at /api/status.
func (r *Recorder) Response() models.StatusResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.StatusKind]int, len(r.counts))
	for k, v := range r.counts {
		counts[k] = v
	}
	resp := models.StatusResponse{Counts: counts}
	if r.last != nil {
		last := *r.last
		resp.Last = &last
	}
	return resp
}

// LogSink writes each status to the standard logger.
type LogSink struct{}

func (LogSink) Publish(s models.Status) {
	switch s.Kind {
	case models.StatusFreshData:
		if s.Sample != nil && s.Sample.Complete() {
			log.Printf("Fresh data at %s: temperature %.1f °C, humidity %.1f %%", s.Sample.Label, *s.Sample.Temperature, *s.Sample.Humidity)
		}
	case models.StatusNoData:
		if s.Err != "" {
			log.Printf("No data from InfluxDB: %s", s.Err)
		} else {
			log.Println("No complete temperature/humidity pair in the latest readings")
		}
	case models.StatusHistoricalLoaded:
		log.Printf("Historical load %s installed %d samples", s.LoadID, s.Count)
	case models.StatusHistoricalEmpty:
		if s.Err != "" {
			log.Printf("Historical load %s returned no data: %s", s.LoadID, s.Err)
		} else {
			log.Printf("Historical load %s returned no data", s.LoadID)
		}
	}
}
