package symbols

// Param is one formal parameter of a specialization.
type Param struct {
	Ident IdentID
	Type  Type
}

// SubFunction is one concretely-typed implementation of a declared function:
// either a compiler-generated per-call-site specialization or one
// programmer-authored dynamic-dispatch variant of a multimethod.
type SubFunction struct {
	ID     SubFuncID
	Params []Param
	// Body is an opaque reference into the syntax tree owned by the parser.
	Body int32
	// Next chains specializations of the same function.
	Next   SubFuncID
	Parent FuncID

	CodeStart   int32
	Typechecked bool
	ReturnType  Type
}

// Function is one declared function name at one argument count. Same name
// and same argument count reuse one Function (gaining a specialization);
// same name at a different argument count allocates a sibling.
type Function struct {
	Name string
	ID   FuncID

	NumArgs   int32
	CodeStart int32

	// FirstSpec heads the specialization chain (same name and arg count,
	// differing argument types).
	FirstSpec SubFuncID
	// Sibling links functions sharing this name at other argument counts.
	Sibling FuncID

	// Multimethod marks the specializations as programmer-declared dynamic
	// dispatch variants rather than compiler-synthesized ones. Callers must
	// not toggle it once the first specialization is attached.
	Multimethod bool

	ScopeDepth int32
	RetVals    int32

	// Calls counts call sites; codegen culls functions never called.
	Calls int32
}
