// internal/repository/query_client.go

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SHT20Monitor.influxDB/internal/logging"
	"SHT20Monitor.influxDB/internal/models"
)

// QueryClient reads temperature and humidity rows from the time-series store.
type QueryClient interface {
	FetchLatest(ctx context.Context) ([]models.RawRow, error)
	FetchRange(ctx context.Context, r models.TimeRange) ([]models.RawRow, error)
	Ping(ctx context.Context) error
	Close()
}

// Settings describes what to query and how long a query may take.
type Settings struct {
	Bucket           string
	Measurement      string
	TemperatureField string
	HumidityField    string
	LookBack         time.Duration
	Timeout          time.Duration
}

const (
	defaultLookBack = 60 * time.Second
	defaultTimeout  = 5 * time.Second
)

func (s Settings) withDefaults() Settings {
	if s.LookBack <= 0 {
		s.LookBack = defaultLookBack
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	return s
}

// Reason classifies a Failure.
type Reason string

const (
	ReasonTransport    Reason = "transport"
	ReasonStatus       Reason = "status"
	ReasonParse        Reason = "parse"
	ReasonInvalidRange Reason = "invalid_range"
)

// ErrInvalidRange is wrapped by failures for ranges that cannot be placed into a query.
var ErrInvalidRange = errors.New("invalid time range")

// Failure is returned whenever a whole request could not be completed.
// Individual malformed rows never produce one.
type Failure struct {
	Op         string
	Reason     Reason
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s query failed (%s, HTTP %d): %v", f.Op, f.Reason, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("%s query failed (%s): %v", f.Op, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsFailure reports whether err is (or wraps) a Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

const (
	opLatest = "latest"
	opRange  = "range"
)

// Physical limits of the SHT20 sensor; anything outside is a bad reading.
const (
	minTemperature = -40.0
	maxTemperature = 125.0
	minHumidity    = 0.0
	maxHumidity    = 100.0
)

// rowBuilder maps store field names onto models.Field and validates readings.
type rowBuilder struct {
	fields map[string]models.Field
}

func newRowBuilder(s Settings) rowBuilder {
	return rowBuilder{fields: map[string]models.Field{
		s.TemperatureField: models.FieldTemperature,
		s.HumidityField:    models.FieldHumidity,
	}}
}

func (b rowBuilder) build(ts time.Time, fieldName string, value float64) (models.RawRow, bool) {
	if ts.IsZero() {
		logging.Debugf("dropping %s row without timestamp", fieldName)
		return models.RawRow{}, false
	}
	field, ok := b.fields[fieldName]
	if !ok {
		logging.Debugf("dropping row for unexpected field %q", fieldName)
		return models.RawRow{}, false
	}
	if !inPhysicalRange(field, value) {
		logging.Debugf("dropping %s reading %v outside sensor range", field, value)
		return models.RawRow{}, false
	}
	return models.RawRow{Timestamp: models.FormatTimestamp(ts), Field: field, Value: value}, true
}

func inPhysicalRange(field models.Field, value float64) bool {
	switch field {
	case models.FieldTemperature:
		return value >= minTemperature && value <= maxTemperature
	case models.FieldHumidity:
		return value >= minHumidity && value <= maxHumidity
	}
	return false
}
