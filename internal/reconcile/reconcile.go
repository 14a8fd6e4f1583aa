// Package reconcile pairs independently timestamped temperature and humidity
// rows into aligned samples.
//
// Only timestamps present for both fields produce output. A timestamp seen
// for a single field is dropped rather than interpolated.
package reconcile

import (
	"sort"

	"SHT20Monitor.influxDB/internal/models"
)

// Reconcile aligns rows by timestamp and returns the paired columns in
// ascending time order. A repeated timestamp for the same field keeps the
// last value seen.
func Reconcile(rows []models.RawRow) models.Series {
	temperature := make(map[string]float64)
	humidity := make(map[string]float64)
	for _, row := range rows {
		switch row.Field {
		case models.FieldTemperature:
			temperature[row.Timestamp] = row.Value
		case models.FieldHumidity:
			humidity[row.Timestamp] = row.Value
		}
	}

	keys := make([]string, 0, min(len(temperature), len(humidity)))
	for ts := range temperature {
		if _, ok := humidity[ts]; ok {
			keys = append(keys, ts)
		}
	}
	sort.Strings(keys)

	out := models.Series{
		Temperature: make([]float64, 0, len(keys)),
		Humidity:    make([]float64, 0, len(keys)),
		Labels:      make([]string, 0, len(keys)),
	}
	for _, ts := range keys {
		out.Temperature = append(out.Temperature, temperature[ts])
		out.Humidity = append(out.Humidity, humidity[ts])
		out.Labels = append(out.Labels, models.TimeLabel(ts))
	}
	return out
}

// Latest handles the single-reading case: it yields a sample only when both
// fields have a value, regardless of whether their timestamps match. Each
// field keeps its newest reading, the later row winning a tie, so several
// series in one response never pair an older reading over a newer one. The
// label comes from the newer of the two readings.
func Latest(rows []models.RawRow) (models.Sample, bool) {
	var (
		temp, hum     *models.RawRow
		tempTS, humTS string
	)
	for i := range rows {
		row := &rows[i]
		switch row.Field {
		case models.FieldTemperature:
			if temp == nil || row.Timestamp >= tempTS {
				temp, tempTS = row, row.Timestamp
			}
		case models.FieldHumidity:
			if hum == nil || row.Timestamp >= humTS {
				hum, humTS = row, row.Timestamp
			}
		}
	}
	if temp == nil || hum == nil {
		return models.Sample{}, false
	}
	return models.NewSample(temp.Value, hum.Value, models.TimeLabel(max(tempTS, humTS))), true
}
