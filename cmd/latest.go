package main

import (
	"context"
	"fmt"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/service"
	"SHT20Monitor.influxDB/internal/status"
	"SHT20Monitor.influxDB/internal/window"
	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Run a single poll cycle and print the sample",
	RunE:  runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, args []string) error {
	cfg, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	ctx := context.Background()
	client, closeClient := newQueryClient(ctx, cfg, nil)
	defer closeClient()

	poller := service.NewPoller(client, window.New(1), status.Multi{}, service.PollerOptions{})
	st := poller.Cycle(ctx)

	out := cmd.OutOrStdout()
	switch {
	case st.Kind == models.StatusFreshData && st.Sample != nil:
		fmt.Fprintf(out, "%s  temperature %.2f °C  humidity %.2f %%\n", st.Sample.Label, *st.Sample.Temperature, *st.Sample.Humidity)
		return nil
	case st.Err != "":
		return fmt.Errorf("no data: %s", st.Err)
	default:
		return fmt.Errorf("no complete temperature/humidity pair in the last %s", cfg.LatestLookBack)
	}
}
