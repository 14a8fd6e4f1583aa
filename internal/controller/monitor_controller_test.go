package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/status"
	"SHT20Monitor.influxDB/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	got    []models.TimeRange
	result models.Status
}

func (f *fakeHistory) Load(ctx context.Context, r models.TimeRange) models.Status {
	f.got = append(f.got, r)
	return f.result
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func newController(t *testing.T) (*MonitorController, *window.RollingWindow, *status.Recorder, *fakeHistory) {
	t.Helper()
	w := window.New(4)
	rec := status.NewRecorder()
	hist := &fakeHistory{result: models.Status{Kind: models.StatusHistoricalLoaded, Count: 2, LoadID: "abc"}}
	return NewMonitorController(w, rec, hist, fakePinger{}), w, rec, hist
}

func TestHandleWindow(t *testing.T) {
	c, w, _, _ := newController(t)
	w.Append(models.NewSample(22.5, 61, "10:00:01"))
	w.Append(models.NewSample(22.7, 62, "10:00:03"))

	rec := httptest.NewRecorder()
	c.HandleWindow(rec, httptest.NewRequest(http.MethodGet, "/api/window", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"capacity": 4,
		"length": 2,
		"temperature": [22.5, 22.7],
		"humidity": [61, 62],
		"labels": ["10:00:01", "10:00:03"]
	}`, rec.Body.String())
}

func TestHandleStatus(t *testing.T) {
	c, _, recorder, _ := newController(t)
	recorder.Publish(models.Status{Kind: models.StatusNoData})
	recorder.Publish(models.Status{Kind: models.StatusNoData})

	rec := httptest.NewRecorder()
	c.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Last)
	assert.Equal(t, models.StatusNoData, body.Last.Kind)
	assert.Equal(t, 2, body.Counts[models.StatusNoData])
}

func TestHandleHistoryFromJSONBody(t *testing.T) {
	c, _, _, hist := newController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(`{"start":"2024-05-01T10:00:00Z","stop":"2024-05-01T11:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.HandleHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []models.TimeRange{{Start: "2024-05-01T10:00:00Z", Stop: "2024-05-01T11:00:00Z"}}, hist.got)

	var st models.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, models.StatusHistoricalLoaded, st.Kind)
	assert.Equal(t, 2, st.Count)
}

func TestHandleHistoryFromQueryDefaultsStop(t *testing.T) {
	c, _, _, hist := newController(t)

	rec := httptest.NewRecorder()
	c.HandleHistory(rec, httptest.NewRequest(http.MethodPost, "/api/history?start=-1h", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []models.TimeRange{{Start: "-1h", Stop: "now()"}}, hist.got)
}

func TestHandleHistoryRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code models.ErrorCode
	}{
		{"missing start", `{"stop":"now()"}`, models.ErrorCodeMissingParameter},
		{"empty body", ``, models.ErrorCodeMissingParameter},
		{"malformed json", `{"start":`, models.ErrorCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, hist := newController(t)
			req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			c.HandleHistory(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var apiErr models.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Empty(t, hist.got)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	c, w, rec, hist := newController(t)

	ok := httptest.NewRecorder()
	c.HandleHealth(ok, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, ok.Code)

	down := NewMonitorController(w, rec, hist, fakePinger{err: errors.New("connection refused")})
	res := httptest.NewRecorder()
	down.HandleHealth(res, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeServiceUnavailable, apiErr.Code)
	assert.Equal(t, "connection refused", apiErr.Details)
}
