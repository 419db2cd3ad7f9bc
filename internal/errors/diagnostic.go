// Package errors defines the structured diagnostics Lumen's drivers print.
// Each phase reduces its own error types to a Diagnostic; the CLI and REPL
// render diagnostics uniformly, as colored text or as JSON.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
)

// SchemaVersion pins the JSON format emitted by Diagnostic.JSON.
const SchemaVersion = "lumen.diagnostic/v1"

// Severity separates problems in the user's program from invariant
// violations inside the elaborator. A bug-severity diagnostic reaching a
// user is itself a defect signal.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityBug   Severity = "bug"
)

// Diagnostic is the structured form every phase's errors reduce to. It is
// itself an error value, so it travels through ordinary error returns and
// fmt.Errorf("%w", …) wrapping without a carrier type.
type Diagnostic struct {
	Code     string
	Phase    string // "parse", "desugar", "typecheck", …
	Severity Severity
	Message  string
	Span     ast.Span          // zero when the location is unknown
	Notes    map[string]string // named details, e.g. "found", "expected"
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Span.IsZero() {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Code, d.Span.Start, d.Message)
}

// New builds an error-severity diagnostic.
func New(code, phase, message string, span ast.Span) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Phase:    phase,
		Severity: SeverityError,
		Message:  message,
		Span:     span,
	}
}

// Bug builds a bug-severity diagnostic for elaborator invariant violations.
func Bug(code, phase, message string, span ast.Span) *Diagnostic {
	d := New(code, phase, message, span)
	d.Severity = SeverityBug
	return d
}

// Generic reduces an error with no richer structure to a diagnostic.
func Generic(phase string, err error) *Diagnostic {
	return New(CodeGeneric, phase, err.Error(), ast.Span{})
}

// Note attaches a named detail, returning the diagnostic for chaining.
func (d *Diagnostic) Note(key, value string) *Diagnostic {
	if d.Notes == nil {
		d.Notes = map[string]string{}
	}
	d.Notes[key] = value
	return d
}

// Find extracts a Diagnostic from anywhere in an error chain.
func Find(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// JSON renders the diagnostic for --json consumers. The span is omitted
// when unknown; the schema field pins the format for tooling.
func (d *Diagnostic) JSON(compact bool) (string, error) {
	payload := struct {
		Schema   string            `json:"schema"`
		Code     string            `json:"code"`
		Phase    string            `json:"phase"`
		Severity Severity          `json:"severity"`
		Message  string            `json:"message"`
		Span     *ast.Span         `json:"span,omitempty"`
		Notes    map[string]string `json:"notes,omitempty"`
	}{
		Schema:   SchemaVersion,
		Code:     d.Code,
		Phase:    d.Phase,
		Severity: d.Severity,
		Message:  d.Message,
		Notes:    d.Notes,
	}
	if !d.Span.IsZero() {
		span := d.Span
		payload.Span = &span
	}

	var out []byte
	var err error
	if compact {
		out, err = json.Marshal(payload)
	} else {
		out, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(out), nil
}
