package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"keel/internal/ast"
	"keel/internal/source"
)

// Table stores all scopes of one analysis unit in a compact arena, indexed by
// ScopeID, and answers name registration, conflict, and resolution queries.
//
// A Table is exclusively owned by the single pass that builds it; no
// operation blocks or locks. Disjoint tables (one per independent file) can
// be used from different goroutines freely.
type Table struct {
	scopes []Scope // index 0 reserved for NoScopeID
	astb   *ast.Builder
}

// NewTable builds an empty table reading declaration facts (intrinsic name,
// overloadability) from astb.
func NewTable(astb *ast.Builder, capacity uint) *Table {
	if capacity == 0 {
		capacity = 16
	}
	capValue, err := safecast.Conv[uint32](capacity)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	return &Table{
		scopes: make([]Scope, 1, capValue+1),
		astb:   astb,
	}
}

// NewScope allocates a scope and wires it under parent (NoScopeID for the
// outermost scope). node is kept as an opaque handle for callers.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, node ast.NodeRef) ScopeID {
	value, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ScopeID(value)
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Node:      node,
		Parent:    parent,
		visible:   make(map[source.StringID][]ast.DeclID),
		invisible: make(map[source.StringID][]ast.DeclID),
	})
	if parent.IsValid() {
		if p := t.Get(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer or nil for an invalid ID.
func (t *Table) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Len reports the number of scopes excluding the sentinel.
func (t *Table) Len() int { return len(t.scopes) - 1 }

// Node returns the opaque enclosing-node handle recorded for the scope.
func (t *Table) Node(id ScopeID) ast.NodeRef {
	if sc := t.Get(id); sc != nil {
		return sc.Node
	}
	return ast.NodeRef{}
}

// Parent returns the enclosing scope, NoScopeID at the outermost scope.
func (t *Table) Parent(id ScopeID) ScopeID {
	if sc := t.Get(id); sc != nil {
		return sc.Parent
	}
	return NoScopeID
}

// RegisterOptions adjusts a single Register call.
type RegisterOptions struct {
	// Name overrides the declaration's intrinsic name when valid.
	Name source.StringID
	// Invisible registers into the invisible mapping: the binding takes part
	// in conflict detection but is never returned by Resolve.
	Invisible bool
	// Update discards any prior binding set for the name and installs this
	// declaration as its only binding, bypassing conflict detection.
	Update bool
}

// Register binds the declaration's effective name in the given scope.
//
// An empty effective name registers nothing and succeeds: anonymous
// declarations are legal but unnameable. On conflict the table is left
// unchanged and false is returned; the clashing prior declaration stays
// queryable through Conflicting.
func (t *Table) Register(id ScopeID, decl ast.DeclID, opts RegisterOptions) bool {
	sc := t.Get(id)
	if sc == nil || !decl.IsValid() {
		return false
	}
	name := t.effectiveName(decl, opts.Name)
	if !name.IsValid() {
		return true
	}

	if opts.Update {
		// Rebind-in-place: the name is cleared from both mappings so the new
		// binding is the only one, whatever was there before.
		delete(sc.visible, name)
		delete(sc.invisible, name)
		if opts.Invisible {
			sc.invisible[name] = []ast.DeclID{decl}
		} else {
			sc.visible[name] = []ast.DeclID{decl}
		}
		return true
	}

	if prev := t.Conflicting(id, decl, opts.Name); prev.IsValid() {
		return false
	}

	target := sc.visible
	if opts.Invisible {
		target = sc.invisible
	}
	if !slices.Contains(target[name], decl) {
		target[name] = append(target[name], decl)
	}
	return true
}

// Resolve returns the visible binding set for name in the given scope.
//
// A non-empty set shadows any binding of the same name in enclosing scopes;
// outer and inner bindings are never merged. With recursive set, an unbound
// name falls through to the enclosing scope, terminating with an empty result
// at the outermost one. Invisible bindings are never returned.
//
// The returned slice aliases table storage; callers must not modify it.
func (t *Table) Resolve(id ScopeID, name source.StringID, recursive bool) []ast.DeclID {
	sc := t.Get(id)
	if sc == nil || !name.IsValid() {
		return nil
	}
	if decls := sc.visible[name]; len(decls) > 0 {
		return decls
	}
	if !recursive || !sc.Parent.IsValid() {
		return nil
	}
	return t.Resolve(sc.Parent, name, true)
}

// Conflicting reports whether registering decl (non-update, non-invisible)
// under its effective name would clash in this scope, without mutating
// anything. It returns the first clashing prior declaration for diagnostics,
// or NoDeclID when registration would succeed.
//
// Both mappings are consulted: an invisible binding occupies its name even
// though Resolve never returns it. Enclosing scopes are not consulted;
// shadowing an outer binding is not a conflict. Re-registering a declaration
// that is already the name's only binding never conflicts, so registration
// stays idempotent for overloadable and non-overloadable kinds alike.
func (t *Table) Conflicting(id ScopeID, decl ast.DeclID, name source.StringID) ast.DeclID {
	sc := t.Get(id)
	if sc == nil || !decl.IsValid() {
		return ast.NoDeclID
	}
	effective := t.effectiveName(decl, name)
	if !effective.IsValid() {
		return ast.NoDeclID
	}

	if t.astb.KindOf(decl).Overloadable() {
		for _, mapping := range []map[source.StringID][]ast.DeclID{sc.visible, sc.invisible} {
			for _, prev := range mapping[effective] {
				if !t.astb.KindOf(prev).Overloadable() {
					return prev
				}
			}
		}
		return ast.NoDeclID
	}

	// A non-overloadable declaration tolerates exactly one prior binding:
	// itself.
	first := ast.NoDeclID
	count := 0
	for _, mapping := range []map[source.StringID][]ast.DeclID{sc.visible, sc.invisible} {
		for _, prev := range mapping[effective] {
			if count == 0 {
				first = prev
			}
			count++
		}
	}
	if count == 1 && first == decl {
		return ast.NoDeclID
	}
	return first
}

// Declarations exposes the full visible mapping of a scope, for callers that
// enumerate every bound name (symbol listings, overload candidate sets).
// Read-only; binding sets alias table storage.
func (t *Table) Declarations(id ScopeID) map[source.StringID][]ast.DeclID {
	if sc := t.Get(id); sc != nil {
		return sc.visible
	}
	return nil
}

func (t *Table) effectiveName(decl ast.DeclID, override source.StringID) source.StringID {
	if override.IsValid() {
		return override
	}
	return t.astb.NameOf(decl)
}
