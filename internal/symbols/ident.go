package symbols

import (
	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
)

// IdentFlags encode per-identifier attributes for quick checks.
type IdentFlags uint8

const (
	// IdentSingleAssignment is set at declaration and cleared on the second
	// assignment; the optimizer treats still-set idents as SSA-like values.
	IdentSingleAssignment IdentFlags = 1 << iota
	// IdentConstant rejects any assignment after the initializer.
	IdentConstant
	// IdentStaticConstant marks constants whose value is baked into the
	// image; this is the only flag that survives serialization.
	IdentStaticConstant
	// IdentPrivate restricts visibility to the declaring file; private
	// bindings are unhooked from plain lookup when its include ends.
	IdentPrivate
)

// Strings returns textual labels for the set flags.
func (f IdentFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&IdentSingleAssignment != 0 {
		labels = append(labels, "single-assignment")
	}
	if f&IdentConstant != 0 {
		labels = append(labels, "constant")
	}
	if f&IdentStaticConstant != 0 {
		labels = append(labels, "static-constant")
	}
	if f&IdentPrivate != 0 {
		labels = append(labels, "private")
	}
	return labels
}

// Ident is one declared occurrence of a variable name. Idents live in the
// table's arena for the whole compile; only their reachability through
// plain-name lookup changes as scopes open and close.
type Ident struct {
	Name string
	ID   IdentID
	Line int32
	// ScopeDepth is the nesting depth of the declaring scope; two idents
	// with equal depth were declared in the same scope.
	ScopeDepth int32
	// Prev links to the ident this one shadows, forming a per-name stack
	// that scope exit unwinds in reverse declaration order.
	Prev IdentID
	// Owner is the specialization whose body declared this ident.
	Owner SubFuncID
	Flags IdentFlags
	Type  Type
}

// Assign records an assignment. The first assignment after the declaring one
// clears single-assignment; assigning a constant is an error.
func (id *Ident) Assign() error {
	id.Flags &^= IdentSingleAssignment
	if id.Flags&IdentConstant != 0 {
		return diag.Errorf(diag.SymAssignToConstant, "variable %s is constant", id.Name).
			At(source.Span{File: source.NoFileID, Line: id.Line})
	}
	return nil
}
