package repository

import (
	"testing"
	"time"

	"SHT20Monitor.influxDB/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildLatestQuery(t *testing.T) {
	q := buildLatestQuery(testSettings)

	assert.Contains(t, q, `from(bucket: "monitoring")`)
	assert.Contains(t, q, `|> range(start: -60s)`)
	assert.Contains(t, q, `r["_measurement"] == "monitoring"`)
	assert.Contains(t, q, `r["_field"] == "temperature" or r["_field"] == "humidity"`)
	assert.Contains(t, q, `|> last()`)
}

func TestBuildRangeQuery(t *testing.T) {
	q := buildRangeQuery(testSettings, models.TimeRange{Start: "2024-05-01T10:00:00Z", Stop: "2024-05-01T11:00:00Z"})

	assert.Contains(t, q, `|> range(start: 2024-05-01T10:00:00Z, stop: 2024-05-01T11:00:00Z)`)
	assert.Contains(t, q, `r["_field"] == "temperature" or r["_field"] == "humidity"`)
	assert.NotContains(t, q, "last()")
}

func TestFluxDuration(t *testing.T) {
	assert.Equal(t, "60s", fluxDuration(time.Minute))
	assert.Equal(t, "1500ms", fluxDuration(1500*time.Millisecond))
}

func TestValidRange(t *testing.T) {
	tests := []struct {
		name  string
		r     models.TimeRange
		valid bool
	}{
		{"rfc3339", models.TimeRange{Start: "2024-05-01T10:00:00Z", Stop: "2024-05-01T11:00:00+07:00"}, true},
		{"relative", models.TimeRange{Start: "-1h", Stop: "now()"}, true},
		{"empty start", models.TimeRange{Start: "", Stop: "2024-05-01T11:00:00Z"}, false},
		{"injection", models.TimeRange{Start: "-1h) |> drop(", Stop: "now()"}, false},
		{"spaces", models.TimeRange{Start: "2024-05-01 10:00:00", Stop: "now()"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validRange(tt.r)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRange)
			}
		})
	}
}
