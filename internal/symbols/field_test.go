package symbols

import (
	"testing"

	"github.com/OIEIEIO/lobster/internal/diag"
)

func TestStructDeclareAndUse(t *testing.T) {
	tbl := NewTable(Hints{})
	st, err := tbl.DeclareStruct("xy")
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if st != StructID(0) {
		t.Fatalf("first struct must get index 0, got %v", st)
	}
	if _, err := tbl.DeclareStruct("xy"); !diag.IsCode(err, diag.SymDuplicateDeclaration) {
		t.Fatalf("expected duplicate declaration, got %v", err)
	}
	got, err := tbl.UseStruct("xy")
	if err != nil || got != st {
		t.Fatalf("use = %v, %v", got, err)
	}
	if _, err := tbl.UseStruct("zw"); !diag.IsCode(err, diag.SymUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}
}

func TestUnregisterStruct(t *testing.T) {
	tbl := NewTable(Hints{})
	st, err := tbl.DeclareStruct("xy")
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := tbl.UnregisterStruct(st); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if _, err := tbl.UseStruct("xy"); !diag.IsCode(err, diag.SymUnknownType) {
		t.Fatalf("unregistered struct must not resolve, got %v", err)
	}
	redecl, err := tbl.DeclareStruct("xy")
	if err != nil {
		t.Fatalf("redeclare after unregister: %v", err)
	}
	if redecl == st {
		t.Fatalf("redeclaration must allocate a fresh index")
	}
	// The arena record survives so persisted indices stay stable.
	if tbl.Struct(st) == nil || tbl.Struct(st).Name != "xy" {
		t.Fatalf("unregister must not drop the arena record")
	}
	if err := tbl.UnregisterStruct(StructID(99)); !diag.IsCode(err, diag.SymUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}
	tbl.Freeze()
	if err := tbl.UnregisterStruct(redecl); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("frozen table must reject unregister, got %v", err)
	}
}

func TestStructIndexAndArity(t *testing.T) {
	tbl := NewTable(Hints{})
	declareStructWithFields(t, tbl, "xy", "x", "y")
	st := declareStructWithFields(t, tbl, "xyz", "x", "y", "z")

	id, arity, ok := tbl.StructIndexAndArity("xyz")
	if !ok || id != st || arity != 3 {
		t.Fatalf("got %v, %d, %v", id, arity, ok)
	}
	if _, _, ok := tbl.StructIndexAndArity("nope"); ok {
		t.Fatalf("unknown struct must not be found")
	}
}

func TestSuperclassCycleRejected(t *testing.T) {
	tbl := NewTable(Hints{})
	base, err := tbl.DeclareStruct("base")
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	derived, err := tbl.DeclareStruct("derived")
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := tbl.SetSuperclass(derived, base); err != nil {
		t.Fatalf("set superclass: %v", err)
	}
	err = tbl.SetSuperclass(base, derived)
	if !diag.IsCode(err, diag.SymCyclicSuperclass) {
		t.Fatalf("expected cyclic superclass, got %v", err)
	}
	if err := tbl.SetSuperclass(base, base); !diag.IsCode(err, diag.SymCyclicSuperclass) {
		t.Fatalf("self superclass must be rejected, got %v", err)
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFieldOffsetClassification(t *testing.T) {
	tbl := NewTable(Hints{})
	a, _ := tbl.DeclareStruct("a")
	b, _ := tbl.DeclareStruct("b")
	c, _ := tbl.DeclareStruct("c")

	// One distinct offset: every struct stores the field at 4.
	for _, st := range []StructID{a, b, c} {
		if _, err := tbl.DeclareField("mono", Type{Kind: KindInt}, st, 4); err != nil {
			t.Fatalf("declare mono: %v", err)
		}
	}
	fld, _ := tbl.LookupField("mono")
	sf := tbl.Field(fld)
	if sf.DistinctOffsets != 1 || sf.Plan() != PlanFixed {
		t.Fatalf("mono: distinct=%d plan=%v", sf.DistinctOffsets, sf.Plan())
	}

	// Two distinct offsets {4,4,8}: branch plan with cached offsets 4 and 8,
	// the singular occurrence on the First side.
	offs := []int32{4, 4, 8}
	for i, st := range []StructID{a, b, c} {
		if _, err := tbl.DeclareField("bi", Type{Kind: KindInt}, st, offs[i]); err != nil {
			t.Fatalf("declare bi: %v", err)
		}
	}
	fld, _ = tbl.LookupField("bi")
	sf = tbl.Field(fld)
	if sf.DistinctOffsets != 2 || sf.Plan() != PlanBranch {
		t.Fatalf("bi: distinct=%d plan=%v", sf.DistinctOffsets, sf.Plan())
	}
	if sf.First.Offset != 8 || sf.Rest.Offset != 4 {
		t.Fatalf("bi cached offsets = {%d, %d}, want {8, 4}", sf.First.Offset, sf.Rest.Offset)
	}

	// Three distinct offsets {4,8,12}: must route through an offset table.
	offs = []int32{4, 8, 12}
	for i, st := range []StructID{a, b, c} {
		if _, err := tbl.DeclareField("mega", Type{Kind: KindInt}, st, offs[i]); err != nil {
			t.Fatalf("declare mega: %v", err)
		}
	}
	fld, _ = tbl.LookupField("mega")
	sf = tbl.Field(fld)
	if sf.DistinctOffsets != 3 || sf.Plan() != PlanTable {
		t.Fatalf("mega: distinct=%d plan=%v", sf.DistinctOffsets, sf.Plan())
	}
	if sf.OffsetTable != -1 {
		t.Fatalf("offset table index must be unassigned, got %d", sf.OffsetTable)
	}
	tbl.AssignOffsetTable(fld, 7)
	if tbl.Field(fld).OffsetTable != 7 {
		t.Fatalf("offset table index not stored")
	}

	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSharedFieldSpansStructs(t *testing.T) {
	tbl := NewTable(Hints{})
	a := declareStructWithFields(t, tbl, "a", "x")
	b := declareStructWithFields(t, tbl, "b", "x")

	fld, ok := tbl.LookupField("x")
	if !ok {
		t.Fatalf("field x missing")
	}
	if tbl.NumFields() != 1 {
		t.Fatalf("same name must share one field record, have %d", tbl.NumFields())
	}
	for _, st := range []StructID{a, b} {
		if _, has := tbl.Struct(st).HasField(fld); !has {
			t.Fatalf("struct %v lost its field slot", st)
		}
	}
	if len(tbl.Field(fld).Offsets) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(tbl.Field(fld).Offsets))
	}
}
