package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportClient = "client"
	TransportHTTP   = "http"
)

// Config holds the application's configuration.
type Config struct {
	InfluxDBURL      string
	InfluxDBToken    string
	InfluxDBOrg      string
	Bucket           string
	Measurement      string
	TemperatureField string
	HumidityField    string
	Transport        string

	WindowSize     int
	PollInterval   time.Duration
	PollMaxBackoff time.Duration
	LatestLookBack time.Duration
	QueryTimeout   time.Duration

	Port        string
	CORSOrigins []string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	Log LogConfig
}

// LogConfig controls log output and rotation.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Debug      bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("influxdb_bucket", "monitoring")
	v.SetDefault("influxdb_measurement", "monitoring")
	v.SetDefault("temperature_field", "temperature")
	v.SetDefault("humidity_field", "humidity")
	v.SetDefault("influx_transport", TransportClient)
	v.SetDefault("window_size", 50)
	v.SetDefault("poll_interval", 2*time.Second)
	v.SetDefault("poll_max_backoff", time.Duration(0))
	v.SetDefault("latest_lookback", 60*time.Second)
	v.SetDefault("query_timeout", 5*time.Second)
	v.SetDefault("port", "8000")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
}

// LoadConfig loads the configuration from .env, the environment and any flags bound to v.
func LoadConfig(v *viper.Viper) (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	v.AutomaticEnv()
	SetDefaults(v)

	cfg := Config{
		InfluxDBURL:      v.GetString("influxdb_url"),
		InfluxDBToken:    v.GetString("influxdb_token"),
		InfluxDBOrg:      v.GetString("influxdb_org"),
		Bucket:           v.GetString("influxdb_bucket"),
		Measurement:      v.GetString("influxdb_measurement"),
		TemperatureField: v.GetString("temperature_field"),
		HumidityField:    v.GetString("humidity_field"),
		Transport:        v.GetString("influx_transport"),
		WindowSize:       v.GetInt("window_size"),
		PollInterval:     v.GetDuration("poll_interval"),
		PollMaxBackoff:   v.GetDuration("poll_max_backoff"),
		LatestLookBack:   v.GetDuration("latest_lookback"),
		QueryTimeout:     v.GetDuration("query_timeout"),
		Port:             v.GetString("port"),
		CORSOrigins:      splitList(v.GetString("cors_allowed_origins")),
		JWTSecret:        v.GetString("jwt_secret"),
		JWTIssuer:        v.GetString("jwt_issuer"),
		JWTAudience:      v.GetString("jwt_audience"),
		RedisAddr:        v.GetString("redis_addr"),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          v.GetInt("redis_db"),
		CacheTTL:         v.GetDuration("cache_ttl"),
		Log: LogConfig{
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
			Debug:      v.GetBool("log_debug"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c Config) Validate() error {
	if c.InfluxDBURL == "" || c.InfluxDBToken == "" || c.InfluxDBOrg == "" {
		return fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
	}
	if c.Bucket == "" || c.Measurement == "" {
		return fmt.Errorf("bucket and measurement are required")
	}
	if c.TemperatureField == "" || c.HumidityField == "" || c.TemperatureField == c.HumidityField {
		return fmt.Errorf("temperature and humidity fields must be set and distinct")
	}
	if c.Transport != TransportClient && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport: %s (valid: %s, %s)", c.Transport, TransportClient, TransportHTTP)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.LatestLookBack <= 0 {
		return fmt.Errorf("latest look-back must be positive, got %s", c.LatestLookBack)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive, got %s", c.QueryTimeout)
	}
	if c.PollMaxBackoff < 0 {
		return fmt.Errorf("poll max backoff cannot be negative, got %s", c.PollMaxBackoff)
	}
	if c.AuthEnabled() && (c.JWTIssuer == "" || c.JWTAudience == "") {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE are required when JWT_SECRET is set")
	}
	return nil
}

// AuthEnabled reports whether history requests require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// CacheEnabled reports whether historical ranges are cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
