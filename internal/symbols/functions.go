package symbols

import "github.com/OIEIEIO/lobster/internal/diag"

// DeclareFunction resolves a function declaration site to a Function.
//
// A declaration matching an existing name must occur at the same scope depth
// as the first one. Matching name and argument count reuse that Function:
// the caller attaches a further specialization to it. A new argument count
// allocates a fresh Function spliced into the name's sibling chain.
func (t *Table) DeclareFunction(name string, numArgs int32) (FuncID, error) {
	if err := t.mutable("declare function"); err != nil {
		return NoFuncID, err
	}

	head, exists := t.funcIndex[name]
	if exists {
		if t.Func(head).ScopeDepth != t.ScopeDepth() {
			return NoFuncID, diag.Errorf(diag.SymInconsistentOverloadScope,
				"cannot define a variation of function %s at a different scope level", name)
		}
		for cur := head; cur.IsValid(); cur = t.Func(cur).Sibling {
			if t.Func(cur).NumArgs == numArgs {
				return cur, nil
			}
		}
	}

	id := t.newFunc(name, numArgs)
	if exists {
		fn := t.Func(id)
		headFn := t.Func(head)
		fn.Sibling = headFn.Sibling
		headFn.Sibling = id
	} else {
		t.funcIndex[name] = id
	}
	return id, nil
}

// UnregisterFunction removes fn's name from the lookup index, hiding every
// overload in the sibling chain from later name resolution. The entry may
// already be gone when another variation of the same name was unregistered
// first; that is not an error.
func (t *Table) UnregisterFunction(fn FuncID) error {
	if err := t.mutable("unregister function"); err != nil {
		return err
	}
	f := t.Func(fn)
	if f == nil {
		return diag.Errorf(diag.SymUnknownIdentifier, "unknown function index: %d", fn)
	}
	delete(t.funcIndex, f.Name)
	return nil
}

// FindFunction returns the head of the sibling chain for a name.
func (t *Table) FindFunction(name string) (FuncID, bool) {
	id, ok := t.funcIndex[name]
	return id, ok
}

// AddSpecialization appends a SubFunction to fn's specialization chain and
// returns it. The type checker calls this once per concretely-typed variant
// it instantiates (or, for multimethods, once per programmer-authored case).
func (t *Table) AddSpecialization(fn FuncID, params []Param, body int32) (SubFuncID, error) {
	if err := t.mutable("add specialization"); err != nil {
		return NoSubFuncID, err
	}
	if t.Func(fn) == nil {
		return NoSubFuncID, diag.Errorf(diag.SymUnknownIdentifier, "unknown function index: %d", fn)
	}
	id := t.newSubFunc(fn)
	sub := t.SubFunc(id)
	sub.Params = params
	sub.Body = body

	f := t.Func(fn)
	if !f.FirstSpec.IsValid() {
		f.FirstSpec = id
	} else {
		cur := f.FirstSpec
		for t.SubFunc(cur).Next.IsValid() {
			cur = t.SubFunc(cur).Next
		}
		t.SubFunc(cur).Next = id
	}
	return id, nil
}

// NoteCall counts a call site against fn so codegen can cull functions that
// are never called.
func (t *Table) NoteCall(fn FuncID) {
	if f := t.Func(fn); f != nil {
		f.Calls++
	}
}

// Specializations collects fn's specialization chain in attachment order.
func (t *Table) Specializations(fn FuncID) []SubFuncID {
	f := t.Func(fn)
	if f == nil {
		return nil
	}
	var out []SubFuncID
	for cur := f.FirstSpec; cur.IsValid(); cur = t.SubFunc(cur).Next {
		out = append(out, cur)
	}
	return out
}

// Overloads collects the sibling chain for a name, head first.
func (t *Table) Overloads(name string) []FuncID {
	head, ok := t.funcIndex[name]
	if !ok {
		return nil
	}
	var out []FuncID
	for cur := head; cur.IsValid(); cur = t.Func(cur).Sibling {
		out = append(out, cur)
	}
	return out
}
