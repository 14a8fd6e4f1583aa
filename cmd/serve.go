package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"SHT20Monitor.influxDB/internal/controller"
	"SHT20Monitor.influxDB/internal/metrics"
	"SHT20Monitor.influxDB/internal/middleware"
	"SHT20Monitor.influxDB/internal/routes"
	"SHT20Monitor.influxDB/internal/service"
	"SHT20Monitor.influxDB/internal/status"
	"SHT20Monitor.influxDB/internal/window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll InfluxDB and serve the rolling window over HTTP",
	Example: `  # Serve on the port from PORT (default 8000)
  sht20-monitor serve

  # Poll every 5 seconds and keep 120 samples
  sht20-monitor serve --poll-interval 5s --window-size 120`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "HTTP port (overrides PORT)")
	serveCmd.Flags().Int("window-size", 0, "Number of samples kept in the window (overrides WINDOW_SIZE)")
	serveCmd.Flags().Duration("poll-interval", 0, "Delay between polls (overrides POLL_INTERVAL)")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("window_size", serveCmd.Flags().Lookup("window-size"))
	viper.BindPFlag("poll_interval", serveCmd.Flags().Lookup("poll-interval"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := window.New(cfg.WindowSize)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewPromMetrics(reg, w.Len)

	client, closeClient := newQueryClient(ctx, cfg, prom)
	defer closeClient()

	if err := client.Ping(ctx); err != nil {
		log.Printf("InfluxDB health check failed, polling anyway: %v", err)
	} else {
		log.Println("Successfully connected to InfluxDB!")
	}

	recorder := status.NewRecorder()
	sink := status.Multi{recorder, status.LogSink{}, prom}

	poller := service.NewPoller(client, w, sink, service.PollerOptions{
		Interval:   cfg.PollInterval,
		MaxBackoff: cfg.PollMaxBackoff,
	})
	loader := service.NewHistoryLoader(client, w, sink)

	opts := routes.Options{CORSOrigins: cfg.CORSOrigins, Gatherer: reg}
	if cfg.AuthEnabled() {
		auth, err := middleware.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
		if err != nil {
			return err
		}
		opts.Auth = auth
		log.Println("JWT authentication enabled for history requests")
	}
	ctrl := controller.NewMonitorController(w, recorder, loader, client)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           routes.NewRouter(ctrl, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server is running at: http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down")
	case err := <-serveErr:
		stop()
		wg.Wait()
		return fmt.Errorf("error starting server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout+time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	wg.Wait()
	return nil
}
