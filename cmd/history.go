package main

import (
	"context"
	"encoding/json"
	"fmt"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/service"
	"SHT20Monitor.influxDB/internal/status"
	"SHT20Monitor.influxDB/internal/window"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the reconciled series for a time range",
	Example: `  # Last hour as JSON
  sht20-monitor history --start -1h

  # A fixed range as YAML
  sht20-monitor history --start 2024-05-01T10:00:00Z --stop 2024-05-01T11:00:00Z --output yaml`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().String("start", "", "Range start, RFC3339 or relative duration (required)")
	historyCmd.Flags().String("stop", "now()", "Range stop")
	historyCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
	historyCmd.MarkFlagRequired("start")
}

func runHistory(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetString("start")
	stop, _ := cmd.Flags().GetString("stop")
	output, _ := cmd.Flags().GetString("output")
	if output != "json" && output != "yaml" {
		return fmt.Errorf("invalid output format: %s (valid: json, yaml)", output)
	}

	cfg, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	ctx := context.Background()
	client, closeClient := newQueryClient(ctx, cfg, nil)
	defer closeClient()

	loader := service.NewHistoryLoader(client, window.New(cfg.WindowSize), status.Multi{})
	series, err := loader.Fetch(ctx, models.TimeRange{Start: start, Stop: stop})
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	return writeSeries(cmd, series, output)
}

func writeSeries(cmd *cobra.Command, series models.Series, output string) error {
	out := cmd.OutOrStdout()
	if output == "yaml" {
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(series)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}
