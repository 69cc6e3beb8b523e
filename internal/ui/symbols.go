// Package ui renders resolved scope trees for the terminal.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"keel/internal/ast"
	"keel/internal/sema"
	"keel/internal/symbols"
)

var (
	scopeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	ownerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	builtinStyle = lipgloss.NewStyle().Faint(true)
)

// RenderScopeTree writes an indented listing of every scope reachable from
// the file scope, with its bound names and their declaration kinds.
func RenderScopeTree(w io.Writer, res *sema.Result, astb *ast.Builder) {
	renderScope(w, res, astb, res.FileScope, 0)
}

func renderScope(w io.Writer, res *sema.Result, astb *ast.Builder, id symbols.ScopeID, depth int) {
	table := res.Table
	indent := strings.Repeat("  ", depth)

	heading := scopeStyle.Render(table.Get(id).Kind.String() + " scope")
	if node := table.Node(id); node.Kind == ast.NodeDecl {
		if name := astb.NameOf(node.Decl); name.IsValid() {
			heading += " " + ownerStyle.Render(astb.Strings.MustLookup(name))
		}
	}
	fmt.Fprintf(w, "%s%s\n", indent, heading)

	for _, entry := range sortedBindings(res, astb, id) {
		line := fmt.Sprintf("%s  %s %s", indent, nameStyle.Render(padName(entry.name)), kindStyle.Render(entry.kind))
		if entry.count > 1 {
			line += " " + countStyle.Render(fmt.Sprintf("(%d overloads)", entry.count))
		}
		fmt.Fprintln(w, line)
	}

	for _, child := range table.Get(id).Children {
		renderScope(w, res, astb, child, depth+1)
	}
}

// RenderPrelude lists the builtin declarations, faint, for --all output.
func RenderPrelude(w io.Writer, res *sema.Result, astb *ast.Builder) {
	fmt.Fprintln(w, scopeStyle.Render("prelude scope"))
	for _, entry := range sortedBindings(res, astb, res.Prelude) {
		fmt.Fprintf(w, "  %s\n", builtinStyle.Render(padName(entry.name)+" "+entry.kind))
	}
}

type binding struct {
	name  string
	kind  string
	count int
}

func sortedBindings(res *sema.Result, astb *ast.Builder, id symbols.ScopeID) []binding {
	var out []binding
	for nameID, decls := range res.Table.Declarations(id) {
		out = append(out, binding{
			name:  astb.Strings.MustLookup(nameID),
			kind:  astb.KindOf(decls[0]).String(),
			count: len(decls),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func padName(name string) string {
	const width = 16
	if runewidth.StringWidth(name) >= width {
		return name
	}
	return name + strings.Repeat(" ", width-runewidth.StringWidth(name))
}
