package symbols

import "github.com/OIEIEIO/lobster/internal/diag"

// OpenWith pushes a with-scope: until the enclosing lexical scope closes,
// fields of typ resolve as bare names against the instance bound to binding.
// Opening the same struct type twice in overlapping scopes is an error.
func (t *Table) OpenWith(typ Type, binding IdentID) error {
	if err := t.mutable("open with-scope"); err != nil {
		return err
	}
	if typ.Kind != KindStruct || t.Struct(typ.Struct) == nil {
		return diag.Errorf(diag.SymUnknownType, "with requires a declared struct type, got %s", typ.Kind)
	}
	for _, wb := range t.withStack {
		if wb.Type.Struct == typ.Struct {
			return diag.Errorf(diag.SymDuplicateWithType,
				"type used twice in the same scope with ::: %s", t.StructName(typ.Struct))
		}
	}
	t.withStack = append(t.withStack, withBinding{Type: typ, Binding: binding})
	return nil
}

// ResolveWithField tries to resolve a bare name as a struct field through
// the open with-scopes. A name that is not a field of anything is not an
// error: (NoFieldID, NoIdentID, nil) tells the caller to fall through to
// plain identifier lookup. A field declared by more than one open
// with-struct is ambiguous.
func (t *Table) ResolveWithField(name string) (FieldID, IdentID, error) {
	fld, ok := t.fieldIndex[name]
	if !ok {
		return NoFieldID, NoIdentID, nil
	}

	binding := NoIdentID
	for _, wb := range t.withStack {
		st := t.Struct(wb.Type.Struct)
		if st == nil {
			continue
		}
		if _, has := st.HasField(fld); has {
			if binding.IsValid() {
				return NoFieldID, NoIdentID, diag.Errorf(diag.SymAmbiguousFieldAccess,
					"access to ambiguous field: %s", name)
			}
			binding = wb.Binding
		}
	}
	if !binding.IsValid() {
		return NoFieldID, NoIdentID, nil
	}
	return fld, binding, nil
}

// WithDepth reports how many with-scopes are currently open.
func (t *Table) WithDepth() int { return len(t.withStack) }
