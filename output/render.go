// Package output renders validation events for humans (colored text)
// and machines (a JSON report with a run ID).
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/c360studio/semlint/validate"
)

// Renderer writes validation events to a stream.
type Renderer interface {
	Render(w io.Writer, events []validate.Event, modelFiles int) error
}

// NewRenderer selects a renderer by format name ("text" or "json").
func NewRenderer(format string, noColor bool) (Renderer, error) {
	switch format {
	case "text":
		return &TextRenderer{NoColor: noColor}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextRenderer writes one line per event plus a summary.
type TextRenderer struct {
	// NoColor disables severity coloring.
	NoColor bool
}

var severityColors = map[validate.Severity]*color.Color{
	validate.SeverityNote:    color.New(color.FgCyan),
	validate.SeverityWarning: color.New(color.FgYellow),
	validate.SeverityDanger:  color.New(color.FgHiRed),
	validate.SeverityError:   color.New(color.FgRed, color.Bold),
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, events []validate.Event, modelFiles int) error {
	for _, e := range events {
		sev := string(e.Severity)
		if !r.NoColor {
			if c, ok := severityColors[e.Severity]; ok {
				sev = c.Sprint(sev)
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %s: [%s] %s\n", sev, e.Source, e.ID, e.Message); err != nil {
			return err
		}
	}

	if len(events) == 0 {
		_, err := fmt.Fprintf(w, "No findings in %d model document(s).\n", modelFiles)
		return err
	}
	_, err := fmt.Fprintf(w, "%d finding(s) in %d model document(s).\n", len(events), modelFiles)
	return err
}

// Report is the JSON report shape.
type Report struct {
	RunID      string                    `json:"runId"`
	Timestamp  time.Time                 `json:"timestamp"`
	ModelFiles int                       `json:"modelFiles"`
	Counts     map[validate.Severity]int `json:"counts"`
	Events     []validate.Event          `json:"events"`
}

// JSONRenderer writes an indented JSON report.
type JSONRenderer struct{}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, events []validate.Event, modelFiles int) error {
	report := Report{
		RunID:      uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		ModelFiles: modelFiles,
		Counts:     countBySeverity(events),
		Events:     events,
	}
	if report.Events == nil {
		report.Events = []validate.Event{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func countBySeverity(events []validate.Event) map[validate.Severity]int {
	counts := make(map[validate.Severity]int)
	for _, e := range events {
		counts[e.Severity]++
	}
	return counts
}
