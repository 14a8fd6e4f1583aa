package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"SHT20Monitor.influxDB/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithErrorUsesStatusAndEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, models.NewAPIError(models.ErrorCodeMissingParameter, "start is required", nil, http.StatusBadRequest))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_parameter", body["code"])
	assert.Equal(t, "start is required", body["message"])
	assert.NotContains(t, body, "details")
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusOK, map[string]int{"length": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"length":3}`, rec.Body.String())
}

func TestRespondWithJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
