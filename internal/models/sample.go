package models

import "time"

// Field identifies one of the two correlated signals read from the store.
type Field string

const (
	FieldTemperature Field = "temperature"
	FieldHumidity    Field = "humidity"
)

// TimestampLayout is the fixed-width UTC layout every RawRow timestamp is
// normalized to. Lexicographic order on it equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp normalizes t to TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TimeLabel returns the HH:MM:SS portion of a normalized timestamp.
func TimeLabel(ts string) string {
	if len(ts) < 19 {
		return ts
	}
	return ts[11:19]
}

// RawRow is one parsed record of a query response.
type RawRow struct {
	Timestamp string  `json:"timestamp"`
	Field     Field   `json:"field"`
	Value     float64 `json:"value"`
}

// Sample is a temperature/humidity pair with its time label.
type Sample struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Label       string   `json:"label"`
}

// NewSample builds a complete sample.
func NewSample(temperature, humidity float64, label string) Sample {
	return Sample{Temperature: &temperature, Humidity: &humidity, Label: label}
}

// Complete reports whether both readings are present.
func (s Sample) Complete() bool {
	return s.Temperature != nil && s.Humidity != nil
}

// Series holds the three parallel columns of a window or a reconciled range.
type Series struct {
	Temperature []float64 `json:"temperature" yaml:"temperature"`
	Humidity    []float64 `json:"humidity" yaml:"humidity"`
	Labels      []string  `json:"labels" yaml:"labels"`
}

// Len returns the number of rows. Columns are always the same length.
func (s Series) Len() int {
	return len(s.Labels)
}
