package symbols

// Restore entry points rebuild arena contents from a persisted image. They
// bypass scope and name-map bookkeeping: a reloaded table carries no
// parse-time state (active bindings, shadow chains, scope markers are not
// persisted) and is frozen by the loader as soon as the last record lands.

// RestoreIdent re-appends a persisted ident record.
func (t *Table) RestoreIdent(name string, line int32, staticConstant bool) IdentID {
	id := t.newIdent(name, line, NoSubFuncID)
	if staticConstant {
		t.idents[id].Flags |= IdentStaticConstant
	}
	return id
}

// RestoreFunction re-appends a persisted function record.
func (t *Table) RestoreFunction(name string, numArgs, codeStart, retVals int32) FuncID {
	id := t.newFunc(name, numArgs)
	fn := t.Func(id)
	fn.CodeStart = codeStart
	fn.RetVals = retVals
	return id
}

// RestoreStruct re-appends a persisted struct record.
func (t *Table) RestoreStruct(name string, superclass StructID, readOnly bool) StructID {
	id := t.newStruct(name)
	st := t.Struct(id)
	st.Superclass = superclass
	st.ReadOnly = readOnly
	return id
}

// RestoreField re-appends a persisted shared-field record.
func (t *Table) RestoreField(name string) FieldID {
	return t.newField(name)
}
