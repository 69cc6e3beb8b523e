// Package diag defines the diagnostic model shared by all front-end phases.
//
// Diagnostic is the central record: severity, a compact stable code, a short
// message, the primary source.Span, and optional notes pointing at related
// locations ("previous declaration here").
//
// Producers emit through the Reporter interface, usually via ReportBuilder
// (ReportError(...).WithNote(...).Emit()), so emission stays decoupled from
// storage. BagReporter aggregates into a Bag, which supports bounded
// collection, sorting, and deduplication. Rendering lives in internal/diagfmt;
// this package performs no formatting or IO.
package diag
