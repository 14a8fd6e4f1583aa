package main

import (
	"context"
	"log"

	"SHT20Monitor.influxDB/internal/cache"
	"SHT20Monitor.influxDB/internal/config"
	"SHT20Monitor.influxDB/internal/repository"
)

// newQueryClient builds the configured transport, optionally wrapped with
// the Redis range cache and a query observer.
func newQueryClient(ctx context.Context, cfg config.Config, observer repository.QueryObserver) (repository.QueryClient, func()) {
	settings := repository.Settings{
		Bucket:           cfg.Bucket,
		Measurement:      cfg.Measurement,
		TemperatureField: cfg.TemperatureField,
		HumidityField:    cfg.HumidityField,
		LookBack:         cfg.LatestLookBack,
		Timeout:          cfg.QueryTimeout,
	}

	var client repository.QueryClient
	switch cfg.Transport {
	case config.TransportHTTP:
		client = repository.NewHTTPRepository(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, settings)
	default:
		client = repository.NewInfluxDBRepository(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, settings)
	}
	cleanup := []func(){client.Close}

	if observer != nil {
		client = repository.NewInstrumented(client, observer)
	}

	if cfg.CacheEnabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Range cache disabled: %v", err)
		} else {
			client = repository.NewCached(client, rc, cfg.Bucket+"/"+cfg.Measurement, cfg.CacheTTL)
			cleanup = append(cleanup, func() {
				if err := rc.Close(); err != nil {
					log.Printf("Error closing Redis client: %v", err)
				}
			})
		}
	}

	return client, func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}
}
