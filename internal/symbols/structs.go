package symbols

import "github.com/OIEIEIO/lobster/internal/diag"

// DeclareStruct registers a new struct type with an empty field list.
func (t *Table) DeclareStruct(name string) (StructID, error) {
	if err := t.mutable("declare struct"); err != nil {
		return NoStructID, err
	}
	if _, ok := t.structIndex[name]; ok {
		return NoStructID, diag.Errorf(diag.SymDuplicateDeclaration,
			"double declaration of type: %s", name)
	}
	id := t.newStruct(name)
	t.structIndex[name] = id
	return id, nil
}

// UnregisterStruct removes st's name from the lookup index so a later
// declaration can rebind it. The arena record stays; persisted indices do
// not shift.
func (t *Table) UnregisterStruct(st StructID) error {
	if err := t.mutable("unregister struct"); err != nil {
		return err
	}
	s := t.Struct(st)
	if s == nil {
		return diag.Errorf(diag.SymUnknownType, "unknown type index: %d", st)
	}
	if cur, ok := t.structIndex[s.Name]; ok && cur == st {
		delete(t.structIndex, s.Name)
	}
	return nil
}

// UseStruct resolves a struct type name at a use site.
func (t *Table) UseStruct(name string) (StructID, error) {
	if id, ok := t.structIndex[name]; ok {
		return id, nil
	}
	return NoStructID, diag.Errorf(diag.SymUnknownType, "unknown type: %s", name)
}

// SetSuperclass links st under super. The superclass chain is walked first
// so a cyclic relationship is rejected instead of sending layout-flattening
// consumers into unbounded recursion.
func (t *Table) SetSuperclass(st, super StructID) error {
	if err := t.mutable("set superclass"); err != nil {
		return err
	}
	child := t.Struct(st)
	if child == nil {
		return diag.Errorf(diag.SymUnknownType, "unknown type index: %d", st)
	}
	if super.IsValid() {
		for cur := super; cur.IsValid(); cur = t.Struct(cur).Superclass {
			if cur == st {
				return diag.Errorf(diag.SymCyclicSuperclass,
					"cyclic superclass chain: %s", child.Name)
			}
		}
	}
	child.Superclass = super
	return nil
}

// StructIndexAndArity scans the struct table by name and returns the index
// and field count. Linear, used only by data-literal parsing.
func (t *Table) StructIndexAndArity(name string) (StructID, int, bool) {
	for i := range t.structs {
		if t.structs[i].Name == name {
			return t.structs[i].ID, len(t.structs[i].Fields), true
		}
	}
	return NoStructID, 0, false
}

// DeclareField records that owner stores a field called name at the given
// byte offset. The name-level SharedField is created on first use and
// shared across every struct that declares the name; the occurrence updates
// its distinct-offset classification. The owner gains a UniqueField slot.
func (t *Table) DeclareField(name string, typ Type, owner StructID, offset int32) (FieldID, error) {
	if err := t.mutable("declare field"); err != nil {
		return NoFieldID, err
	}
	st := t.Struct(owner)
	if st == nil {
		return NoFieldID, diag.Errorf(diag.SymUnknownType, "unknown type index: %d", owner)
	}
	id, ok := t.fieldIndex[name]
	if !ok {
		id = t.newField(name)
		t.fieldIndex[name] = id
	}
	t.fields[id].addUse(FieldOffset{Struct: owner, Offset: offset})
	st.Fields = append(st.Fields, UniqueField{Type: typ, Field: id})
	return id, nil
}

// LookupField returns the shared field for a name, if any struct declared it.
func (t *Table) LookupField(name string) (FieldID, bool) {
	id, ok := t.fieldIndex[name]
	return id, ok
}

// AssignOffsetTable stores the generated-code index of the offset-lookup
// table for a megamorphic field. Only meaningful for fields whose plan is
// PlanTable; the code generator calls this while emitting the table.
func (t *Table) AssignOffsetTable(fld FieldID, tableIndex int32) {
	if sf := t.Field(fld); sf != nil {
		sf.OffsetTable = tableIndex
	}
}
