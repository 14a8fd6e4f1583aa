package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/utils"
)

// WindowReader is the read side of the rolling window.
type WindowReader interface {
	Snapshot() models.Series
	Cap() int
}

// StatusReader exposes the last reported status.
type StatusReader interface {
	Response() models.StatusResponse
}

// HistoryRunner installs a historical range into the window.
type HistoryRunner interface {
	Load(ctx context.Context, r models.TimeRange) models.Status
}

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorController handles HTTP requests for the monitor window and history.
type MonitorController struct {
	window  WindowReader
	status  StatusReader
	history HistoryRunner
	store   Pinger
}

// NewMonitorController creates a new MonitorController.
func NewMonitorController(window WindowReader, status StatusReader, history HistoryRunner, store Pinger) *MonitorController {
	return &MonitorController{
		window:  window,
		status:  status,
		history: history,
		store:   store,
	}
}

// HandleWindow returns a snapshot of the rolling window.
func (c *MonitorController) HandleWindow(w http.ResponseWriter, r *http.Request) {
	snap := c.window.Snapshot()
	utils.RespondWithJSON(w, http.StatusOK, models.WindowResponse{
		Capacity: c.window.Cap(),
		Length:   snap.Len(),
		Series:   snap,
	})
}

// HandleStatus returns the last status and the per-kind counters.
func (c *MonitorController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.status.Response())
}

// HandleHistory loads a time range into the window. The range comes from a
// JSON body or from the start/stop query parameters; stop defaults to now().
func (c *MonitorController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	tr, err := readTimeRange(r)
	if err != nil {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInvalidFormat, err.Error(), nil, http.StatusBadRequest))
		return
	}
	if tr.Start == "" {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeMissingParameter, "start is required", nil, http.StatusBadRequest))
		return
	}
	if tr.Stop == "" {
		tr.Stop = "now()"
	}

	log.Printf("History requested from %s to %s", tr.Start, tr.Stop)
	st := c.history.Load(r.Context(), tr)
	utils.RespondWithJSON(w, http.StatusOK, st)
}

// HandleHealth reports whether InfluxDB answers.
func (c *MonitorController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.store.Ping(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeServiceUnavailable, "InfluxDB is unreachable", err.Error(), http.StatusServiceUnavailable))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readTimeRange(r *http.Request) (models.TimeRange, error) {
	query := r.URL.Query()
	tr := models.TimeRange{Start: query.Get("start"), Stop: query.Get("stop")}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return tr, nil
	}

	var body models.TimeRange
	err := json.NewDecoder(r.Body).Decode(&body)
	if errors.Is(err, io.EOF) {
		return tr, nil
	}
	if err != nil {
		return models.TimeRange{}, fmt.Errorf("invalid request payload: %w", err)
	}
	if body.Start != "" {
		tr.Start = body.Start
	}
	if body.Stop != "" {
		tr.Stop = body.Stop
	}
	return tr, nil
}
