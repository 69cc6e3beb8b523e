package symbols

import (
	"errors"
	"fmt"
	"slices"

	"keel/internal/ast"
	"keel/internal/source"
)

// Validate walks the scope arena checking structural invariants. Returns nil
// if everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.scopes); idx++ {
		id := ScopeID(idx) //nolint:gosec // arena growth is overflow-checked
		sc := t.scopes[idx]

		if sc.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", id))
		}
		if sc.Parent.IsValid() {
			if int(sc.Parent) >= len(t.scopes) || sc.Parent == id {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", id, sc.Parent))
			} else if !slices.Contains(t.scopes[sc.Parent].Children, id) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, sc.Parent))
			}
		}

		seen := make(map[ast.DeclID]source.StringID)
		check := func(mapping map[source.StringID][]ast.DeclID, label string) {
			for name, set := range mapping {
				if len(set) == 0 {
					errs = append(errs, fmt.Errorf("scope %d: empty %s binding set for name %d", id, label, name))
					continue
				}
				if len(set) > 1 {
					for _, d := range set {
						if !t.astb.KindOf(d).Overloadable() {
							errs = append(errs, fmt.Errorf("scope %d: non-overloadable decl %d in multi-binding set", id, d))
						}
					}
				}
				for _, d := range set {
					if prior, ok := seen[d]; ok {
						errs = append(errs, fmt.Errorf("scope %d: decl %d bound under both name %d and name %d", id, d, prior, name))
					}
					seen[d] = name
				}
			}
		}
		check(sc.visible, "visible")
		check(sc.invisible, "invisible")
	}

	return errors.Join(errs...)
}
