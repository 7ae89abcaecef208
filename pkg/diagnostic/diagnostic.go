// Package diagnostic defines the non-fatal finding type shared by the parser
// and directive system. Parse and directive problems never abort a build
// (spec.md §7): they accumulate as Diagnostic values alongside a tree that
// still renders.
package diagnostic

import "github.com/bengalssg/bengal/pkg/ast"

// Severity is the importance of a Diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a single non-fatal finding produced while parsing or
// rendering directives.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location ast.Position
	Source   string // e.g. "directive:note", "fence", "parser"
}

// Builder accumulates Diagnostic values during a single parse/render pass.
// It is not safe for concurrent use; each parse constructs its own.
type Builder struct {
	items []Diagnostic
}

// Warning appends a warning-severity diagnostic.
func (b *Builder) Warning(source string, loc ast.Position, message string) {
	b.items = append(b.items, Diagnostic{Severity: SeverityWarning, Message: message, Location: loc, Source: source})
}

// Error appends an error-severity diagnostic. This is still non-fatal: the
// caller keeps parsing/rendering to EOF per spec.md §7.
func (b *Builder) Error(source string, loc ast.Position, message string) {
	b.items = append(b.items, Diagnostic{Severity: SeverityError, Message: message, Location: loc, Source: source})
}

// Append adds an already-constructed Diagnostic, for merging diagnostics
// produced by a helper (e.g. directive.ScanFences) into a larger pass.
func (b *Builder) Append(d Diagnostic) {
	b.items = append(b.items, d)
}

// Items returns the accumulated diagnostics in emission order.
func (b *Builder) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Builder) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
