// internal/repository/influxDB_repository.go

package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"SHT20Monitor.influxDB/internal/logging"
	"SHT20Monitor.influxDB/internal/models"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	influxhttp "github.com/influxdata/influxdb-client-go/v2/api/http"
)

// InfluxDBRepository queries InfluxDB through the official client's Flux query API.
type InfluxDBRepository struct {
	client   influxdb2.Client
	org      string
	settings Settings
	rows     rowBuilder
}

// NewInfluxDBRepository creates a new InfluxDBRepository.
func NewInfluxDBRepository(url, token, org string, settings Settings) *InfluxDBRepository {
	settings = settings.withDefaults()
	opts := influxdb2.DefaultOptions()
	if secs := uint(settings.Timeout.Seconds()); secs > 0 {
		opts.SetHTTPRequestTimeout(secs)
	}
	return &InfluxDBRepository{
		client:   influxdb2.NewClientWithOptions(url, token, opts),
		org:      org,
		settings: settings,
		rows:     newRowBuilder(settings),
	}
}

// FetchLatest returns the most recent temperature and humidity rows.
func (r *InfluxDBRepository) FetchLatest(ctx context.Context) ([]models.RawRow, error) {
	return r.query(ctx, opLatest, buildLatestQuery(r.settings))
}

// FetchRange returns every temperature and humidity row in [start, stop).
func (r *InfluxDBRepository) FetchRange(ctx context.Context, tr models.TimeRange) ([]models.RawRow, error) {
	if err := validRange(tr); err != nil {
		return nil, &Failure{Op: opRange, Reason: ReasonInvalidRange, Err: err}
	}
	return r.query(ctx, opRange, buildRangeQuery(r.settings, tr))
}

func (r *InfluxDBRepository) query(ctx context.Context, op, fluxQuery string) ([]models.RawRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	logging.Debugf("Executing InfluxDB query: %s", fluxQuery)
	result, err := r.client.QueryAPI(r.org).Query(ctx, fluxQuery)
	if err != nil {
		return nil, classify(op, err)
	}
	defer result.Close()

	return r.collect(op, result)
}

func (r *InfluxDBRepository) collect(op string, result *api.QueryTableResult) ([]models.RawRow, error) {
	var rows []models.RawRow
	for result.Next() {
		record := result.Record()

		var value float64
		switch v := record.Value().(type) {
		case float64:
			value = v
		case int64:
			value = float64(v)
		default:
			logging.Debugf("dropping record with non-numeric _value %v", record.Value())
			continue
		}

		if row, ok := r.rows.build(record.Time(), record.Field(), value); ok {
			rows = append(rows, row)
		}
	}
	if result.Err() != nil {
		return nil, &Failure{Op: op, Reason: ReasonParse, Err: result.Err()}
	}
	return rows, nil
}

func classify(op string, err error) error {
	var httpErr *influxhttp.Error
	if errors.As(err, &httpErr) && httpErr.StatusCode > 0 {
		return &Failure{Op: op, Reason: ReasonStatus, StatusCode: httpErr.StatusCode, Err: err}
	}
	return &Failure{Op: op, Reason: ReasonTransport, Err: err}
}

// Ping checks the store's health endpoint.
func (r *InfluxDBRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	health, err := r.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return fmt.Errorf("InfluxDB health check failed: %s", msg)
	}
	return nil
}

// Close releases the client's idle connections.
func (r *InfluxDBRepository) Close() {
	r.client.Close()
	log.Println("InfluxDB client closed")
}
