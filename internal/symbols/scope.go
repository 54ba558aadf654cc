package symbols

import (
	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
)

// DeclareIdent resolves a declaration site to an Ident.
//
// With dynScope set and a binding for name already visible, the existing
// ident is returned unchanged: the variable is redefined call-by-call rather
// than re-declared. Otherwise a fresh ident is allocated; a visible binding
// of the same name must come from an enclosing scope (it gets shadowed), a
// same-scope binding is a redefinition error, and a clash with a field
// visible through an open with-scope is rejected outright.
func (t *Table) DeclareIdent(name string, line int32, dynScope bool, owner SubFuncID) (IdentID, error) {
	if err := t.mutable("declare identifier"); err != nil {
		return NoIdentID, err
	}

	existing, visible := t.active[name]
	if dynScope && visible {
		return existing, nil
	}

	fld, _, err := t.ResolveWithField(name)
	if err != nil {
		return NoIdentID, err
	}
	if fld.IsValid() {
		return NoIdentID, diag.Errorf(diag.SymShadowConflict,
			"cannot define variable with same name as field in this scope: %s", name).
			At(source.Span{Line: line})
	}

	if visible && t.Ident(existing).ScopeDepth == t.ScopeDepth() {
		return NoIdentID, diag.Errorf(diag.SymDuplicateDeclaration,
			"identifier redefinition: %s", name).
			At(source.Span{Line: line})
	}

	id := t.newIdent(name, line, owner)
	if visible {
		t.idents[id].Prev = existing
	}
	t.active[name] = id
	t.identStack = append(t.identStack, id)
	return id, nil
}

// LookupIdent returns the currently-visible binding for name, if any.
func (t *Table) LookupIdent(name string) (IdentID, bool) {
	id, ok := t.active[name]
	return id, ok
}

// UseIdent resolves a use site to the visible binding, erroring when none.
func (t *Table) UseIdent(name string) (IdentID, error) {
	if id, ok := t.active[name]; ok {
		return id, nil
	}
	return NoIdentID, diag.Errorf(diag.SymUnknownIdentifier, "unknown identifier: %s", name)
}

// LookupIdentInFunction scans all declared idents for one whose name matches
// and whose owning specialization belongs to a function of the given name.
// Zero or multiple matches report not-found; this is a best-effort
// diagnostic helper, slow and only used off the hot path.
func (t *Table) LookupIdentInFunction(identName, funcName string) (IdentID, bool) {
	found := NoIdentID
	for i := range t.idents {
		id := &t.idents[i]
		if id.Name != identName || !id.Owner.IsValid() {
			continue
		}
		sub := t.SubFunc(id.Owner)
		if sub == nil {
			continue
		}
		if fn := t.Func(sub.Parent); fn != nil && fn.Name == funcName {
			if found.IsValid() {
				return NoIdentID, false
			}
			found = id.ID
		}
	}
	return found, found.IsValid()
}

// ScopeStart opens a nested scope, recording the ident- and with-stack
// depths so ScopeEnd can unwind to exactly this point.
func (t *Table) ScopeStart() error {
	if err := t.mutable("open scope"); err != nil {
		return err
	}
	t.scopeLevels = append(t.scopeLevels, scopeMark{
		idents: len(t.identStack),
		withs:  len(t.withStack),
	})
	return nil
}

// ScopeEnd closes the innermost scope: every ident declared inside it is
// unhooked from plain lookup, restoring the binding it shadowed, and open
// with-scopes are popped back to their entry depth. The idents themselves
// stay in the arena. The root scope cannot be closed.
func (t *Table) ScopeEnd() error {
	if err := t.mutable("close scope"); err != nil {
		return err
	}
	if len(t.scopeLevels) <= 1 {
		return nil
	}
	mark := t.scopeLevels[len(t.scopeLevels)-1]

	for len(t.identStack) > mark.idents {
		id := t.identStack[len(t.identStack)-1]
		t.identStack = t.identStack[:len(t.identStack)-1]
		ident := t.Ident(id)
		// The name can already be gone if EndOfInclude dropped it.
		if cur, ok := t.active[ident.Name]; ok && cur == id {
			if ident.Prev.IsValid() {
				t.active[ident.Name] = ident.Prev
			} else {
				delete(t.active, ident.Name)
			}
		}
	}
	t.scopeLevels = t.scopeLevels[:len(t.scopeLevels)-1]

	if len(t.withStack) > mark.withs {
		t.withStack = t.withStack[:mark.withs]
	}
	return nil
}

// EndOfInclude unhooks every currently-visible private ident from plain
// lookup, so an included file's private declarations stop being visible to
// the including file. The idents stay in the arena; by invariant a private
// ident shadows nothing, so nothing needs restoring.
func (t *Table) EndOfInclude() error {
	if err := t.mutable("end include"); err != nil {
		return err
	}
	for name, id := range t.active {
		if ident := t.Ident(id); ident != nil && ident.Flags&IdentPrivate != 0 {
			delete(t.active, name)
		}
	}
	return nil
}
