package main

import (
	"fmt"
	"os"

	"SHT20Monitor.influxDB/internal/config"
	"SHT20Monitor.influxDB/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sht20-monitor",
	Short: "SHT20 temperature and humidity monitor backed by InfluxDB",
	Long: `Polls InfluxDB for the latest SHT20 temperature and humidity readings,
keeps a rolling window of recent samples and serves it over HTTP.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("influxdb-url", "", "InfluxDB URL (overrides INFLUXDB_URL)")
	rootCmd.PersistentFlags().String("bucket", "", "InfluxDB bucket (overrides INFLUXDB_BUCKET)")
	rootCmd.PersistentFlags().String("transport", "", "Query transport: client or http (overrides INFLUX_TRANSPORT)")
	viper.BindPFlag("influxdb_url", rootCmd.PersistentFlags().Lookup("influxdb-url"))
	viper.BindPFlag("influxdb_bucket", rootCmd.PersistentFlags().Lookup("bucket"))
	viper.BindPFlag("influx_transport", rootCmd.PersistentFlags().Lookup("transport"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and points the logger at its destination.
// The returned function flushes the log file.
func setup() (config.Config, func(), error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	closer := logging.Setup(cfg.Log)
	return cfg, func() { closer.Close() }, nil
}
