// Package validate defines the validation event model shared by all
// linters, plus small text helpers for message formatting.
package validate

import (
	"fmt"

	"github.com/c360studio/semlint/model"
)

// Severity classifies a validation event.
type Severity string

// Severities ordered from least to most severe.
const (
	SeverityNote    Severity = "NOTE"
	SeverityWarning Severity = "WARNING"
	SeverityDanger  Severity = "DANGER"
	SeverityError   Severity = "ERROR"
)

// rank maps severities to their ordering for threshold comparisons.
var rank = map[Severity]int{
	SeverityNote:    0,
	SeverityWarning: 1,
	SeverityDanger:  2,
	SeverityError:   3,
}

// AtLeast reports whether s is at or above the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return rank[s] >= rank[threshold]
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	_, ok := rank[s]
	return ok
}

// Event is a single validation finding. Events are immutable once
// built; validators return them and the caller reports them.
type Event struct {
	// ID names the validator that produced the event.
	ID string `json:"id"`

	// Severity is the event severity.
	Severity Severity `json:"severity"`

	// Source is where the offending element was declared. The zero
	// value means the finding has no source location (for example a
	// namespace name).
	Source model.SourceLocation `json:"sourceLocation"`

	// Message is the rendered, human-readable finding.
	Message string `json:"message"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s: [%s] %s", e.Severity, e.Source, e.ID, e.Message)
}

// Validator is a model validator. Validate must be deterministic:
// the same model and configuration always yield the same ordered
// events.
type Validator interface {
	// ID returns the validator's event ID.
	ID() string

	// Validate scans the model and returns all findings in order.
	Validate(m *model.Model) []Event
}

// RunAll runs each validator in turn and concatenates the events in
// validator order.
func RunAll(m *model.Model, validators ...Validator) []Event {
	var events []Event
	for _, v := range validators {
		events = append(events, v.Validate(m)...)
	}
	return events
}
