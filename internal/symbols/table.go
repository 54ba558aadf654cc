package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/OIEIEIO/lobster/internal/diag"
)

// State is the table lifecycle: mutation is only legal while Building, and
// only a Frozen table may be serialized.
type State uint8

const (
	Building State = iota
	Frozen
)

func (s State) String() string {
	if s == Frozen {
		return "frozen"
	}
	return "building"
}

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Idents, Structs, Fields, Funcs uint }

// withBinding is one open "with" scope: fields of Type resolve as bare names
// against the instance bound to Binding.
type withBinding struct {
	Type    Type
	Binding IdentID
}

// scopeMark records arena stack depths at scope entry so scope exit can
// unwind exactly.
type scopeMark struct {
	idents int
	withs  int
}

// Table owns every symbol declared during one compile: identifiers, structs,
// shared field names, functions and their specializations. Entities live in
// per-kind arenas addressed by dense IDs; name maps and the scope stack only
// control reachability, never ownership.
type Table struct {
	idents   []Ident
	structs  []Struct
	fields   []SharedField
	funcs    []Function
	subFuncs []SubFunction

	// active maps a name to its currently-visible ident; shadowed idents
	// are reachable through the Prev chain.
	active      map[string]IdentID
	structIndex map[string]StructID
	fieldIndex  map[string]FieldID
	// funcIndex holds the head of each name's sibling chain.
	funcIndex map[string]FuncID

	identStack  []IdentID
	scopeLevels []scopeMark
	withStack   []withBinding

	// UsesFrameState is set by codegen when the compiled program needs the
	// VM's frame-state feature; it is persisted in the image header.
	UsesFrameState bool

	state State
}

// NewTable builds an empty table with the root scope open.
func NewTable(h Hints) *Table {
	t := &Table{
		idents:      make([]Ident, 0, h.Idents),
		structs:     make([]Struct, 0, h.Structs),
		fields:      make([]SharedField, 0, h.Fields),
		funcs:       make([]Function, 0, h.Funcs),
		active:      make(map[string]IdentID),
		structIndex: make(map[string]StructID),
		fieldIndex:  make(map[string]FieldID),
		funcIndex:   make(map[string]FuncID),
	}
	t.scopeLevels = append(t.scopeLevels, scopeMark{})
	return t
}

// State reports the lifecycle state.
func (t *Table) State() State { return t.state }

// Freeze ends the mutation phase. After Freeze every declaring or
// scope-manipulating operation fails with SymTableFrozen, and the table
// becomes eligible for serialization. Freezing twice is a no-op.
func (t *Table) Freeze() {
	t.state = Frozen
}

func (t *Table) mutable(op string) error {
	if t.state != Building {
		return diag.Errorf(diag.SymTableFrozen, "%s on a frozen symbol table", op)
	}
	return nil
}

// ScopeDepth is the current lexical nesting depth; the root scope is 1.
func (t *Table) ScopeDepth() int32 {
	return int32(len(t.scopeLevels))
}

func (t *Table) newIdent(name string, line int32, owner SubFuncID) IdentID {
	value, err := safecast.Conv[int32](len(t.idents))
	if err != nil {
		panic(fmt.Errorf("ident arena overflow: %w", err))
	}
	id := IdentID(value)
	t.idents = append(t.idents, Ident{
		Name:       name,
		ID:         id,
		Line:       line,
		ScopeDepth: t.ScopeDepth(),
		Prev:       NoIdentID,
		Owner:      owner,
		Flags:      IdentSingleAssignment,
		Type:       Undefined,
	})
	return id
}

func (t *Table) newStruct(name string) StructID {
	value, err := safecast.Conv[int32](len(t.structs))
	if err != nil {
		panic(fmt.Errorf("struct arena overflow: %w", err))
	}
	id := StructID(value)
	t.structs = append(t.structs, Struct{Name: name, ID: id, Superclass: NoStructID})
	return id
}

func (t *Table) newField(name string) FieldID {
	value, err := safecast.Conv[int32](len(t.fields))
	if err != nil {
		panic(fmt.Errorf("field arena overflow: %w", err))
	}
	id := FieldID(value)
	t.fields = append(t.fields, SharedField{Name: name, ID: id, OffsetTable: -1})
	return id
}

func (t *Table) newFunc(name string, numArgs int32) FuncID {
	value, err := safecast.Conv[int32](len(t.funcs))
	if err != nil {
		panic(fmt.Errorf("function arena overflow: %w", err))
	}
	id := FuncID(value)
	t.funcs = append(t.funcs, Function{
		Name:       name,
		ID:         id,
		NumArgs:    numArgs,
		FirstSpec:  NoSubFuncID,
		Sibling:    NoFuncID,
		ScopeDepth: t.ScopeDepth(),
	})
	return id
}

func (t *Table) newSubFunc(parent FuncID) SubFuncID {
	value, err := safecast.Conv[int32](len(t.subFuncs))
	if err != nil {
		panic(fmt.Errorf("subfunction arena overflow: %w", err))
	}
	id := SubFuncID(value)
	t.subFuncs = append(t.subFuncs, SubFunction{
		ID:         id,
		Body:       -1,
		Next:       NoSubFuncID,
		Parent:     parent,
		ReturnType: Undefined,
	})
	return id
}

// Ident returns the arena entry, or nil for an invalid ID.
func (t *Table) Ident(id IdentID) *Ident {
	if !id.IsValid() || int(id) >= len(t.idents) {
		return nil
	}
	return &t.idents[id]
}

// Struct returns the arena entry, or nil for an invalid ID.
func (t *Table) Struct(id StructID) *Struct {
	if !id.IsValid() || int(id) >= len(t.structs) {
		return nil
	}
	return &t.structs[id]
}

// Field returns the arena entry, or nil for an invalid ID.
func (t *Table) Field(id FieldID) *SharedField {
	if !id.IsValid() || int(id) >= len(t.fields) {
		return nil
	}
	return &t.fields[id]
}

// Func returns the arena entry, or nil for an invalid ID.
func (t *Table) Func(id FuncID) *Function {
	if !id.IsValid() || int(id) >= len(t.funcs) {
		return nil
	}
	return &t.funcs[id]
}

// SubFunc returns the arena entry, or nil for an invalid ID.
func (t *Table) SubFunc(id SubFuncID) *SubFunction {
	if !id.IsValid() || int(id) >= len(t.subFuncs) {
		return nil
	}
	return &t.subFuncs[id]
}

// NumIdents reports the ident arena length.
func (t *Table) NumIdents() int { return len(t.idents) }

// NumStructs reports the struct arena length.
func (t *Table) NumStructs() int { return len(t.structs) }

// NumFields reports the field arena length.
func (t *Table) NumFields() int { return len(t.fields) }

// NumFuncs reports the function arena length.
func (t *Table) NumFuncs() int { return len(t.funcs) }

// NumSubFuncs reports the subfunction arena length.
func (t *Table) NumSubFuncs() int { return len(t.subFuncs) }

// IdentName reverse-looks-up an ident's display name by arena index.
func (t *Table) IdentName(id IdentID) string {
	if ident := t.Ident(id); ident != nil {
		return ident.Name
	}
	return ""
}

// StructName reverse-looks-up a struct's display name by arena index.
func (t *Table) StructName(id StructID) string {
	if st := t.Struct(id); st != nil {
		return st.Name
	}
	return ""
}

// FieldName reverse-looks-up a field's display name by arena index.
func (t *Table) FieldName(id FieldID) string {
	if fld := t.Field(id); fld != nil {
		return fld.Name
	}
	return ""
}

// FunctionName reverse-looks-up a function's display name by arena index.
func (t *Table) FunctionName(id FuncID) string {
	if fn := t.Func(id); fn != nil {
		return fn.Name
	}
	return ""
}

// ReadOnlyIdent reports whether the ident is a constant.
func (t *Table) ReadOnlyIdent(id IdentID) bool {
	ident := t.Ident(id)
	return ident != nil && ident.Flags&IdentConstant != 0
}

// ReadOnlyStruct reports whether the struct is read-only.
func (t *Table) ReadOnlyStruct(id StructID) bool {
	st := t.Struct(id)
	return st != nil && st.ReadOnly
}

// TypeName renders a type, resolving struct references through the table.
func (t *Table) TypeName(typ Type) string {
	if typ.Kind == KindStruct {
		if name := t.StructName(typ.Struct); name != "" {
			return name
		}
	}
	return typ.Kind.String()
}
