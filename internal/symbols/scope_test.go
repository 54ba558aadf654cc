package symbols

import (
	"testing"

	"github.com/OIEIEIO/lobster/internal/diag"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := NewTable(Hints{})
	id, err := tbl.DeclareIdent("x", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if id != IdentID(0) {
		t.Fatalf("first ident must get index 0, got %v", id)
	}
	got, ok := tbl.LookupIdent("x")
	if !ok || got != id {
		t.Fatalf("lookup = %v, %v", got, ok)
	}
	if _, err := tbl.UseIdent("y"); !diag.IsCode(err, diag.SymUnknownIdentifier) {
		t.Fatalf("expected unknown identifier, got %v", err)
	}
}

func TestSameScopeRedefinition(t *testing.T) {
	tbl := NewTable(Hints{})
	if _, err := tbl.DeclareIdent("x", 1, false, NoSubFuncID); err != nil {
		t.Fatalf("declare: %v", err)
	}
	_, err := tbl.DeclareIdent("x", 2, false, NoSubFuncID)
	if !diag.IsCode(err, diag.SymDuplicateDeclaration) {
		t.Fatalf("expected duplicate declaration, got %v", err)
	}
	if tbl.NumIdents() != 1 {
		t.Fatalf("failed declaration must not allocate, have %d idents", tbl.NumIdents())
	}
}

func TestNestedShadowingUnwindsExactly(t *testing.T) {
	tbl := NewTable(Hints{})
	outer, err := tbl.DeclareIdent("x", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare outer: %v", err)
	}

	if err := tbl.ScopeStart(); err != nil {
		t.Fatalf("scope start: %v", err)
	}
	inner, err := tbl.DeclareIdent("x", 2, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("nested shadowing must succeed: %v", err)
	}
	if inner == outer {
		t.Fatalf("shadowing must allocate a fresh ident")
	}
	if tbl.Ident(inner).Prev != outer {
		t.Fatalf("shadow link = %v, want %v", tbl.Ident(inner).Prev, outer)
	}
	fresh, err := tbl.DeclareIdent("y", 3, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare y: %v", err)
	}
	if got, _ := tbl.LookupIdent("x"); got != inner {
		t.Fatalf("inner binding not active: %v", got)
	}

	if err := tbl.ScopeEnd(); err != nil {
		t.Fatalf("scope end: %v", err)
	}
	if got, ok := tbl.LookupIdent("x"); !ok || got != outer {
		t.Fatalf("outer binding not restored: %v, %v", got, ok)
	}
	if _, ok := tbl.LookupIdent("y"); ok {
		t.Fatalf("y must be invisible after scope end")
	}
	// The idents themselves survive in the arena.
	if tbl.Ident(fresh) == nil || tbl.Ident(inner) == nil {
		t.Fatalf("scope end must not erase arena entries")
	}
}

func TestShadowStackThreeDeep(t *testing.T) {
	tbl := NewTable(Hints{})
	ids := make([]IdentID, 0, 3)
	first, err := tbl.DeclareIdent("v", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	ids = append(ids, first)
	for i := 0; i < 2; i++ {
		if err := tbl.ScopeStart(); err != nil {
			t.Fatalf("scope start: %v", err)
		}
		id, err := tbl.DeclareIdent("v", int32(i+2), false, NoSubFuncID)
		if err != nil {
			t.Fatalf("declare depth %d: %v", i+2, err)
		}
		ids = append(ids, id)
	}
	for i := 2; i > 0; i-- {
		if got, _ := tbl.LookupIdent("v"); got != ids[i] {
			t.Fatalf("depth %d: active = %v, want %v", i, got, ids[i])
		}
		if err := tbl.ScopeEnd(); err != nil {
			t.Fatalf("scope end: %v", err)
		}
	}
	if got, _ := tbl.LookupIdent("v"); got != ids[0] {
		t.Fatalf("root binding not restored, got %v", got)
	}
}

func TestDynamicScopeReusesBinding(t *testing.T) {
	tbl := NewTable(Hints{})
	first, err := tbl.DeclareIdent("log", 1, true, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := tbl.ScopeStart(); err != nil {
		t.Fatalf("scope start: %v", err)
	}
	again, err := tbl.DeclareIdent("log", 9, true, NoSubFuncID)
	if err != nil {
		t.Fatalf("redeclare: %v", err)
	}
	if again != first {
		t.Fatalf("dynamic scope must return the identical ident, got %v and %v", first, again)
	}
	if tbl.NumIdents() != 1 {
		t.Fatalf("dynamic scope must never allocate twice, have %d", tbl.NumIdents())
	}
}

func TestEndOfIncludeHidesPrivates(t *testing.T) {
	tbl := NewTable(Hints{})
	priv, err := tbl.DeclareIdent("helper", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	tbl.Ident(priv).Flags |= IdentPrivate
	if _, err := tbl.DeclareIdent("public", 2, false, NoSubFuncID); err != nil {
		t.Fatalf("declare: %v", err)
	}

	if err := tbl.EndOfInclude(); err != nil {
		t.Fatalf("end of include: %v", err)
	}
	if _, ok := tbl.LookupIdent("helper"); ok {
		t.Fatalf("private ident still visible after include end")
	}
	if _, ok := tbl.LookupIdent("public"); !ok {
		t.Fatalf("public ident lost")
	}
	if tbl.Ident(priv) == nil {
		t.Fatalf("private ident must stay in the arena")
	}
}

func TestScopeEndAfterEndOfInclude(t *testing.T) {
	tbl := NewTable(Hints{})
	if err := tbl.ScopeStart(); err != nil {
		t.Fatalf("scope start: %v", err)
	}
	priv, err := tbl.DeclareIdent("p", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	tbl.Ident(priv).Flags |= IdentPrivate
	if err := tbl.EndOfInclude(); err != nil {
		t.Fatalf("end of include: %v", err)
	}
	// The binding was already removed; unwinding must tolerate that.
	if err := tbl.ScopeEnd(); err != nil {
		t.Fatalf("scope end: %v", err)
	}
}

func TestLookupIdentInFunction(t *testing.T) {
	tbl := NewTable(Hints{})
	fn, err := tbl.DeclareFunction("draw", 1)
	if err != nil {
		t.Fatalf("declare function: %v", err)
	}
	sub, err := tbl.AddSpecialization(fn, nil, -1)
	if err != nil {
		t.Fatalf("specialize: %v", err)
	}
	if err := tbl.ScopeStart(); err != nil {
		t.Fatalf("scope start: %v", err)
	}
	want, err := tbl.DeclareIdent("radius", 3, false, sub)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := tbl.ScopeEnd(); err != nil {
		t.Fatalf("scope end: %v", err)
	}

	got, ok := tbl.LookupIdentInFunction("radius", "draw")
	if !ok || got != want {
		t.Fatalf("lookup in function = %v, %v", got, ok)
	}
	if _, ok := tbl.LookupIdentInFunction("radius", "erase"); ok {
		t.Fatalf("wrong function name must not match")
	}

	// A second matching ident makes the scan ambiguous: not found.
	if err := tbl.ScopeStart(); err != nil {
		t.Fatalf("scope start: %v", err)
	}
	if _, err := tbl.DeclareIdent("radius", 8, false, sub); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if _, ok := tbl.LookupIdentInFunction("radius", "draw"); ok {
		t.Fatalf("ambiguous scan must report not found")
	}
}

func TestAssignConstant(t *testing.T) {
	tbl := NewTable(Hints{})
	id, err := tbl.DeclareIdent("pi", 1, false, NoSubFuncID)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	ident := tbl.Ident(id)
	if err := ident.Assign(); err != nil {
		t.Fatalf("plain assign: %v", err)
	}
	if ident.Flags&IdentSingleAssignment != 0 {
		t.Fatalf("single-assignment flag must clear")
	}
	ident.Flags |= IdentConstant
	if err := ident.Assign(); !diag.IsCode(err, diag.SymAssignToConstant) {
		t.Fatalf("expected constant assignment error, got %v", err)
	}
}
