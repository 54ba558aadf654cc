package symbols

import (
	"testing"

	"github.com/OIEIEIO/lobster/internal/diag"
)

func TestFreezeStopsMutation(t *testing.T) {
	tbl := NewTable(Hints{})
	if _, err := tbl.DeclareIdent("x", 1, false, NoSubFuncID); err != nil {
		t.Fatalf("declare: %v", err)
	}
	tbl.Freeze()
	if tbl.State() != Frozen {
		t.Fatalf("state = %v", tbl.State())
	}

	if _, err := tbl.DeclareIdent("y", 2, false, NoSubFuncID); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("declare ident on frozen table: %v", err)
	}
	if _, err := tbl.DeclareStruct("s"); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("declare struct on frozen table: %v", err)
	}
	if _, err := tbl.DeclareFunction("f", 1); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("declare function on frozen table: %v", err)
	}
	if err := tbl.ScopeStart(); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("scope start on frozen table: %v", err)
	}
	if err := tbl.OpenWith(Type{Kind: KindStruct}, NoIdentID); !diag.IsCode(err, diag.SymTableFrozen) {
		t.Fatalf("open with on frozen table: %v", err)
	}

	// Reads still work.
	if _, ok := tbl.LookupIdent("x"); !ok {
		t.Fatalf("lookup must still work on a frozen table")
	}
}

func TestReverseLookups(t *testing.T) {
	tbl := NewTable(Hints{})
	id, _ := tbl.DeclareIdent("count", 1, false, NoSubFuncID)
	st, _ := tbl.DeclareStruct("xy")
	fld, _ := tbl.DeclareField("x", Type{Kind: KindFloat}, st, 0)
	fn, _ := tbl.DeclareFunction("main", 0)

	if tbl.IdentName(id) != "count" || tbl.StructName(st) != "xy" ||
		tbl.FieldName(fld) != "x" || tbl.FunctionName(fn) != "main" {
		t.Fatalf("reverse lookup broken")
	}
	if tbl.IdentName(NoIdentID) != "" {
		t.Fatalf("invalid ID must reverse to empty string")
	}

	tbl.Ident(id).Flags |= IdentConstant
	if !tbl.ReadOnlyIdent(id) {
		t.Fatalf("constant not reported read-only")
	}
	tbl.Struct(st).ReadOnly = true
	if !tbl.ReadOnlyStruct(st) {
		t.Fatalf("struct not reported read-only")
	}

	if got := tbl.TypeName(StructType(st)); got != "xy" {
		t.Fatalf("TypeName = %q", got)
	}
	if got := tbl.TypeName(Type{Kind: KindInt}); got != "int" {
		t.Fatalf("TypeName = %q", got)
	}
}

func TestDenseIndices(t *testing.T) {
	tbl := NewTable(Hints{Idents: 4, Structs: 2})
	for i := 0; i < 4; i++ {
		if err := tbl.ScopeStart(); err != nil {
			t.Fatalf("scope start: %v", err)
		}
		id, err := tbl.DeclareIdent("x", int32(i), false, NoSubFuncID)
		if err != nil {
			t.Fatalf("declare %d: %v", i, err)
		}
		if id != IdentID(i) {
			t.Fatalf("indices must be dense: got %v at insertion %d", id, i)
		}
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateCatchesCorruption(t *testing.T) {
	tbl := NewTable(Hints{})
	a, _ := tbl.DeclareStruct("a")
	b, _ := tbl.DeclareStruct("b")
	// Force a cycle behind the checked API's back.
	tbl.Struct(a).Superclass = b
	tbl.Struct(b).Superclass = a
	if err := tbl.Validate(); err == nil {
		t.Fatalf("validate must reject a superclass cycle")
	}
}
