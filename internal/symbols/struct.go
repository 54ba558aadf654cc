package symbols

// Struct is one declared record type. Field order is fixed at declaration
// and defines the struct's memory layout.
type Struct struct {
	Name string
	ID   StructID

	Fields []UniqueField

	// Superclass links to an already-declared struct this one extends;
	// the chain is validated acyclic when the link is set.
	Superclass StructID

	ReadOnly bool
}

// HasField returns this struct's slot for the given shared field, if any.
func (st *Struct) HasField(fld FieldID) (UniqueField, bool) {
	for _, uf := range st.Fields {
		if uf.Field == fld {
			return uf, true
		}
	}
	return UniqueField{}, false
}
