package intake

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// Sentinel kinds for rejected input. A request failing either check never
// reaches a model.
var (
	// ErrIncompleteInput means a required field was not provided.
	ErrIncompleteInput = errors.New("incomplete input")
	// ErrInvalidInput means a field was provided but cannot be used, including
	// required numeric fields left at zero.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldProblem names one rejected field.
type FieldProblem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Disease schema.Disease
	Kind    error
	Fields  []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, p := range e.Fields {
		parts[i] = p.Field + ": " + p.Reason
	}
	return fmt.Sprintf("%s %s: %s", e.Disease, e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// KindLabel is a short metric-friendly name for the error kind.
func (e *ValidationError) KindLabel() string {
	if errors.Is(e.Kind, ErrIncompleteInput) {
		return "incomplete_input"
	}
	return "invalid_input"
}

// problems accumulates findings; missing fields outrank invalid ones when
// picking the overall kind.
type problems struct {
	disease schema.Disease
	missing bool
	list    []FieldProblem
}

func (p *problems) missingField(field string) {
	p.missing = true
	p.list = append(p.list, FieldProblem{Field: field, Reason: "required"})
}

func (p *problems) invalid(field, format string, args ...any) {
	p.list = append(p.list, FieldProblem{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (p *problems) err() error {
	if len(p.list) == 0 {
		return nil
	}
	kind := ErrInvalidInput
	if p.missing {
		kind = ErrIncompleteInput
	}
	return &ValidationError{Disease: p.disease, Kind: kind, Fields: p.list}
}

// requirePositive rejects a required numeric left at zero (the form's "unset"
// value) and anything outside [0,max].
func (p *problems) requirePositive(field string, v, max float64) {
	switch {
	case v == 0:
		p.invalid(field, "must be greater than 0")
	default:
		p.inRange(field, v, max)
	}
}

func (p *problems) inRange(field string, v, max float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		p.invalid(field, "must be a number")
	case v < 0 || v > max:
		p.invalid(field, "must be between 0 and %g", max)
	}
}

// integral is checked after inRange, which already reported non-finite values.
func (p *problems) integral(field string, v float64) {
	if !math.IsNaN(v) && !math.IsInf(v, 0) && v != math.Trunc(v) {
		p.invalid(field, "must be a whole number")
	}
}

// category encodes a dropdown selection.
func (p *problems) category(field string, t schema.Table, label string) float64 {
	label = strings.TrimSpace(label)
	if label == "" {
		p.missingField(field)
		return 0
	}
	code, ok := t.Encode(label)
	if !ok {
		p.invalid(field, "must be one of %s", strings.Join(t.Labels(), ", "))
		return 0
	}
	return float64(code)
}
