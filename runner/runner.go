// Package runner wires discovery, loading, validation, and rendering
// into one lint run. The CLI and the watch loop both drive it.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/c360studio/semlint/config"
	"github.com/c360studio/semlint/linter"
	"github.com/c360studio/semlint/metric"
	"github.com/c360studio/semlint/model"
	"github.com/c360studio/semlint/output"
	"github.com/c360studio/semlint/validate"
)

// Result is the outcome of one lint run.
type Result struct {
	Events     []validate.Event
	ModelFiles int
}

// Runner executes lint runs against the configured model paths.
// Validators are constructed once; a misconfigured term table fails
// construction and no model is ever scanned.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	loader     *model.Loader
	validators []validate.Validator
	renderer   output.Renderer
	metrics    *metric.Metrics
}

// New builds a Runner from configuration. metrics may be nil.
func New(cfg *config.Config, logger *slog.Logger, metrics *metric.Metrics) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	terms, err := linter.NewNoninclusiveTerms(cfg.Lint)
	if err != nil {
		return nil, err
	}

	renderer, err := output.NewRenderer(cfg.Output.Format, cfg.Output.NoColor)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:        cfg,
		logger:     logger,
		loader:     model.NewLoader(logger),
		validators: []validate.Validator{terms},
		renderer:   renderer,
		metrics:    metrics,
	}, nil
}

// Run discovers, loads, and validates the configured model documents.
func (r *Runner) Run(patterns []string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = r.cfg.Model.Paths
	}

	paths, err := r.loader.Discover(patterns)
	if err != nil {
		return nil, fmt.Errorf("discover model documents: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no model documents match %v", patterns)
	}

	m, err := r.loader.Load(paths)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	events := validate.RunAll(m, r.validators...)
	r.logger.Debug("lint run complete",
		"documents", len(paths),
		"shapes", m.Len(),
		"events", len(events))

	if r.metrics != nil {
		r.metrics.LintRuns.Inc()
		r.metrics.ModelsLoaded.Add(float64(len(paths)))
		for _, e := range events {
			r.metrics.Events.WithLabelValues(string(e.Severity)).Inc()
		}
	}

	return &Result{Events: events, ModelFiles: len(paths)}, nil
}

// RunAndRender runs the lint and writes the result to w.
func (r *Runner) RunAndRender(w io.Writer, patterns []string) (*Result, error) {
	result, err := r.Run(patterns)
	if err != nil {
		return nil, err
	}
	if err := r.renderer.Render(w, result.Events, result.ModelFiles); err != nil {
		return nil, fmt.Errorf("render events: %w", err)
	}
	return result, nil
}
