package repository

import (
	"context"
	"fmt"
	"strings"

	"SHT20Monitor.influxDB/internal/logging"
	"SHT20Monitor.influxDB/internal/models"
	"github.com/go-resty/resty/v2"
)

// HTTPRepository posts Flux text to /api/v2/query and parses the CSV body itself.
type HTTPRepository struct {
	client   *resty.Client
	org      string
	settings Settings
	rows     rowBuilder
}

// NewHTTPRepository creates a new HTTPRepository.
func NewHTTPRepository(url, token, org string, settings Settings) *HTTPRepository {
	settings = settings.withDefaults()
	client := resty.New().
		SetBaseURL(strings.TrimRight(url, "/")).
		SetTimeout(settings.Timeout).
		SetHeader("Authorization", "Token "+token)
	return &HTTPRepository{
		client:   client,
		org:      org,
		settings: settings,
		rows:     newRowBuilder(settings),
	}
}

// FetchLatest returns the most recent temperature and humidity rows.
func (r *HTTPRepository) FetchLatest(ctx context.Context) ([]models.RawRow, error) {
	return r.query(ctx, opLatest, buildLatestQuery(r.settings))
}

// FetchRange returns every temperature and humidity row in [start, stop).
func (r *HTTPRepository) FetchRange(ctx context.Context, tr models.TimeRange) ([]models.RawRow, error) {
	if err := validRange(tr); err != nil {
		return nil, &Failure{Op: opRange, Reason: ReasonInvalidRange, Err: err}
	}
	return r.query(ctx, opRange, buildRangeQuery(r.settings, tr))
}

func (r *HTTPRepository) query(ctx context.Context, op, fluxQuery string) ([]models.RawRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	logging.Debugf("Posting InfluxDB query: %s", fluxQuery)
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("org", r.org).
		SetHeader("Content-Type", "application/vnd.flux").
		SetHeader("Accept", "application/csv").
		SetBody(fluxQuery).
		Post("/api/v2/query")
	if err != nil {
		return nil, &Failure{Op: op, Reason: ReasonTransport, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &Failure{
			Op:         op,
			Reason:     ReasonStatus,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(resp.String())),
		}
	}

	rows, err := parseCSV(resp.Body(), r.rows)
	if err != nil {
		return nil, &Failure{Op: op, Reason: ReasonParse, Err: err}
	}
	return rows, nil
}

// Ping checks the store's health endpoint.
func (r *HTTPRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	resp, err := r.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("InfluxDB health check failed: %s", resp.Status())
	}
	return nil
}

// Close is a no-op; resty keeps no resources that need releasing.
func (r *HTTPRepository) Close() {}
