package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"keel/internal/ast"
	"keel/internal/sema"
	"keel/internal/symbols"
)

// SymbolJSON is one bound name inside a scope. Overloads share the slot.
type SymbolJSON struct {
	Name  string   `json:"name"`
	Kinds []string `json:"kinds"`
}

// ScopeJSON is one scope of the resolved tree.
type ScopeJSON struct {
	Kind     string       `json:"kind"`
	Owner    string       `json:"owner,omitempty"`
	Symbols  []SymbolJSON `json:"symbols,omitempty"`
	Children []ScopeJSON  `json:"children,omitempty"`
}

// BuildScopeTree converts the resolved file into a serializable scope tree,
// rooted at the file scope. The prelude is omitted: its contents are the
// same for every file.
func BuildScopeTree(res *sema.Result, astb *ast.Builder) ScopeJSON {
	return buildScope(res, astb, res.FileScope)
}

func buildScope(res *sema.Result, astb *ast.Builder, id symbols.ScopeID) ScopeJSON {
	table := res.Table
	out := ScopeJSON{Kind: table.Get(id).Kind.String()}

	if node := table.Node(id); node.Kind == ast.NodeDecl {
		if name := astb.NameOf(node.Decl); name.IsValid() {
			out.Owner, _ = astb.Strings.Lookup(name)
		}
	}

	for nameID, decls := range table.Declarations(id) {
		name, _ := astb.Strings.Lookup(nameID)
		kinds := make([]string, len(decls))
		for i, d := range decls {
			kinds[i] = astb.KindOf(d).String()
		}
		out.Symbols = append(out.Symbols, SymbolJSON{Name: name, Kinds: kinds})
	}
	sort.Slice(out.Symbols, func(i, j int) bool {
		return out.Symbols[i].Name < out.Symbols[j].Name
	})

	for _, child := range table.Get(id).Children {
		out.Children = append(out.Children, buildScope(res, astb, child))
	}
	return out
}

// SymbolsJSON writes the resolved scope tree as indented JSON.
func SymbolsJSON(w io.Writer, res *sema.Result, astb *ast.Builder) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildScopeTree(res, astb))
}
