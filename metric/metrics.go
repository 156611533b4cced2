// Package metric exposes prometheus instrumentation for lint runs.
// The endpoint is only served in watch mode; one-shot lint runs do not
// bind a listener.
package metric

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the semlint collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	LintRuns     prometheus.Counter
	ModelsLoaded prometheus.Counter
	Events       *prometheus.CounterVec
}

// New creates and registers the semlint collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		LintRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "semlint_lint_runs_total",
			Help: "Number of completed lint runs.",
		}),
		ModelsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "semlint_models_loaded_total",
			Help: "Number of model documents loaded across all runs.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "semlint_events_total",
			Help: "Number of validation events emitted, by severity.",
		}, []string{"severity"}),
	}

	registry.MustRegister(m.LintRuns, m.ModelsLoaded, m.Events)
	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
