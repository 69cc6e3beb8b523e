package diag

import (
	"keel/internal/source"
)

// Note attaches secondary context to a diagnostic ("declared here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced by a front-end phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
