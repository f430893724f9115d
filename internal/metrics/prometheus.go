package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the turns counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics contains the Prometheus collectors for one client process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Turns         *prometheus.CounterVec
	TurnsRejected prometheus.Counter
	TurnDuration  prometheus.Histogram
	PanelUpdates  *prometheus.CounterVec
	Resets        *prometheus.CounterVec
}

// New creates the collectors on a private registry so several clients (and
// tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voice_agent_turns_total",
			Help: "Completed turns by outcome",
		}, []string{"outcome"}),
		TurnsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "voice_agent_turns_rejected_total",
			Help: "Turn requests rejected because another turn was in flight",
		}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voice_agent_turn_duration_seconds",
			Help:    "Time from turn start to completion",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		}),
		PanelUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voice_agent_panel_updates_total",
			Help: "Results panel replacements by kind",
		}, []string{"kind"}),
		Resets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voice_agent_session_resets_total",
			Help: "Session reset calls by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveTurn(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(outcome).Inc()
	m.TurnDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.TurnsRejected.Inc()
}

func (m *Metrics) ObservePanel(kind string) {
	if m == nil {
		return
	}
	m.PanelUpdates.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveReset(err error) {
	if m == nil {
		return
	}
	result := OutcomeSuccess
	if err != nil {
		result = OutcomeFailure
	}
	m.Resets.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics listener until ctx is done.
func Serve(ctx context.Context, addr string, m *Metrics, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	logger.Info("metrics listener starting", slog.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
