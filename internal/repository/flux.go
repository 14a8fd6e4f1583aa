package repository

import (
	"fmt"
	"regexp"
	"time"

	"SHT20Monitor.influxDB/internal/models"
)

// Range bounds are inserted verbatim, so only characters that occur in
// RFC3339 times and Flux durations are accepted, plus the literal now().
var rangeValuePattern = regexp.MustCompile(`^[0-9A-Za-z:.+\-]+$`)

func validRangeValue(v string) bool {
	return v == "now()" || rangeValuePattern.MatchString(v)
}

func validRange(r models.TimeRange) error {
	if !validRangeValue(r.Start) {
		return fmt.Errorf("%w: start %q", ErrInvalidRange, r.Start)
	}
	if !validRangeValue(r.Stop) {
		return fmt.Errorf("%w: stop %q", ErrInvalidRange, r.Stop)
	}
	return nil
}

func fluxDuration(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func buildLatestQuery(s Settings) string {
	return fmt.Sprintf(`
		from(bucket: %q)
		|> range(start: -%s)
		|> filter(fn: (r) => r["_measurement"] == %q)
		|> filter(fn: (r) => r["_field"] == %q or r["_field"] == %q)
		|> last()
	`, s.Bucket, fluxDuration(s.LookBack), s.Measurement, s.TemperatureField, s.HumidityField)
}

func buildRangeQuery(s Settings, r models.TimeRange) string {
	return fmt.Sprintf(`
		from(bucket: %q)
		|> range(start: %s, stop: %s)
		|> filter(fn: (r) => r["_measurement"] == %q)
		|> filter(fn: (r) => r["_field"] == %q or r["_field"] == %q)
	`, s.Bucket, r.Start, r.Stop, s.Measurement, s.TemperatureField, s.HumidityField)
}
