package metrics

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus counters.
type Metrics struct {
	EventsCreated prometheus.Counter
	EventsClosed  prometheus.Counter
	EventsDeleted prometheus.Counter
	Signups       prometheus.Counter
	Cancels       prometheus.Counter
	ViewSyncs     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_events_created_total",
			Help: "Number of events created.",
		}),
		EventsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_events_closed_total",
			Help: "Number of events closed.",
		}),
		EventsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_events_deleted_total",
			Help: "Number of events deleted.",
		}),
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_signups_total",
			Help: "Number of successful signups.",
		}),
		Cancels: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_cancels_total",
			Help: "Number of canceled signups.",
		}),
		ViewSyncs: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventbot_view_syncs_total",
			Help: "Number of posted-message synchronizations attempted.",
		}),
	}
}

// Serve exposes /metrics on addr. Blocks; run in a goroutine.
func Serve(addr string, reg *prometheus.Registry, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("metrics listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server stopped", "error", err)
	}
}
