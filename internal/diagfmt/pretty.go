// Package diagfmt renders diagnostics, tokens, and symbol tables for
// consumption by humans (pretty) and tools (JSON).
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"keel/internal/diag"
	"keel/internal/source"
)

// Pretty renders every diagnostic in the bag:
//
//	<path>:<line>:<col>: <SEVERITY>[<code>]: <message>
//	    <source line>
//	    ^~~~ underline covering the span
//
// followed by its notes in the same shape. Call bag.Sort() first for a
// deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeNote(w, fs, n, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	label := fmt.Sprintf("%s[%s]", sev.String(), code.String())
	if opts.Color {
		label = severityColor(sev).Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", displayPath(fs, span.File, opts.PathMode), start.Line, start.Col, label, msg)
}

func writeNote(w io.Writer, fs *source.FileSet, n diag.Note, opts PrettyOpts) {
	start, _ := fs.Resolve(n.Span)
	label := "note"
	if opts.Color {
		label = color.New(color.FgCyan).Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", displayPath(fs, n.Span.File, opts.PathMode), start.Line, start.Col, label, n.Msg)
	writeContext(w, fs, n.Span, opts)
}

// writeContext prints the first source line of the span with an underline.
// Column math is display-width aware, so wide runes and tabs line up.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	pad := displayWidth(line, int(start.Col)-1)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = displayWidth(line[min(int(start.Col)-1, len(line)):], int(end.Col-start.Col))
	}
	underline := "^" + strings.Repeat("~", max(width-1, 0))
	if opts.Color {
		underline = color.New(color.FgHiRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}

// displayWidth measures the terminal width of the first n bytes of s.
func displayWidth(s string, n int) int {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return 0
	}
	w := 0
	for _, r := range s[:n] {
		if r == '\t' {
			w += 4
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	path := fs.Get(id).Path
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgHiRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgHiBlue)
	}
}
