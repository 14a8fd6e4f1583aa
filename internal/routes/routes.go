package routes

import (
	"net/http"

	"SHT20Monitor.influxDB/internal/controller"
	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/utils"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Options configures the router around the controller.
type Options struct {
	CORSOrigins []string
	// Auth wraps the history endpoint when set.
	Auth     func(http.Handler) http.Handler
	Gatherer prometheus.Gatherer
}

// NewRouter defines all API routes and wraps them with CORS.
func NewRouter(c *controller.MonitorController, opts Options) http.Handler {
	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/window", c.HandleWindow).Methods(http.MethodGet)
	api.HandleFunc("/status", c.HandleStatus).Methods(http.MethodGet)

	var history http.Handler = http.HandlerFunc(c.HandleHistory)
	if opts.Auth != nil {
		history = opts.Auth(history)
	}
	api.Handle("/history", history).Methods(http.MethodPost)

	router.HandleFunc("/health", c.HandleHealth).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeMethodNotAllowed, "Method not allowed", nil, http.StatusMethodNotAllowed))
}
