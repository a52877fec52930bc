package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// ErrorView is the machine readable form of a failed command
type ErrorView struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Message    string   `json:"message" yaml:"message"`
	Network    string   `json:"network,omitempty" yaml:"network,omitempty"`
	Field      string   `json:"field,omitempty" yaml:"field,omitempty"`
	Variable   string   `json:"variable,omitempty" yaml:"variable,omitempty"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Sources    []string `json:"sources,omitempty" yaml:"sources,omitempty"`
	ExitCode   int      `json:"exitCode" yaml:"exitCode"`
}

// NewErrorView extracts the kind and offending field of err
func NewErrorView(err error) ErrorView {
	view := ErrorView{
		Kind:     domain.ErrorKind(err),
		Message:  err.Error(),
		ExitCode: domain.ExitCode(err),
	}

	var unknown *domain.UnknownNetworkError
	var invalid *domain.InvalidParameterError
	var conflict *domain.ConfigurationConflictError
	var missing *domain.MissingCredentialError
	switch {
	case errors.As(err, &unknown):
		view.Network = unknown.Name
		view.Suggestion = unknown.Suggestion
	case errors.As(err, &invalid):
		view.Network = invalid.Network
		view.Field = invalid.Field
	case errors.As(err, &conflict):
		view.Network = conflict.Network
		view.Sources = conflict.Sources
	case errors.As(err, &missing):
		view.Variable = missing.Variable
	}
	return view
}

// ErrorRenderer writes command failures to stderr
type ErrorRenderer struct {
	out    io.Writer
	json   bool
	redact func(string) string
}

// NewErrorRenderer creates a new error renderer
func NewErrorRenderer(out io.Writer, json bool) *ErrorRenderer {
	return &ErrorRenderer{out: out, json: json}
}

// WithRedactor hides secrets, such as an RPC key embedded in a URL, in messages
func (r *ErrorRenderer) WithRedactor(redact func(string) string) *ErrorRenderer {
	r.redact = redact
	return r
}

// Render writes err and returns the exit code the process should use
func (r *ErrorRenderer) Render(err error) int {
	view := NewErrorView(err)
	if r.redact != nil {
		view.Message = r.redact(view.Message)
	}
	if r.json {
		if writeErr := writeJSON(r.out, map[string]ErrorView{"error": view}); writeErr != nil {
			fmt.Fprintln(r.out, view.Message)
		}
		return view.ExitCode
	}

	fmt.Fprintln(r.out, errorStyle.Sprintf("❌ %s: %s", view.Kind, view.Message))
	if view.Field != "" {
		fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("field:"), view.Field)
	}
	if view.Variable != "" {
		fmt.Fprintf(r.out, "   %s set %s in the environment or .env\n", labelStyle.Sprint("hint:"), view.Variable)
	}
	return view.ExitCode
}
