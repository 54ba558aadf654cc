package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Dense IDs and well-formed shadow chains.
	for i := range t.idents {
		id := &t.idents[i]
		if int(id.ID) != i {
			errs = append(errs, fmt.Errorf("ident %d stored at index %d", id.ID, i))
		}
		if id.Prev.IsValid() {
			prev := t.Ident(id.Prev)
			if prev == nil {
				errs = append(errs, fmt.Errorf("ident %s has dangling shadow link %d", id.Name, id.Prev))
			} else if prev.Name != id.Name {
				errs = append(errs, fmt.Errorf("ident %s shadows different name %s", id.Name, prev.Name))
			}
			if id.Flags&IdentPrivate != 0 {
				errs = append(errs, fmt.Errorf("private ident %s shadows an outer binding", id.Name))
			}
		}
		if id.Owner.IsValid() && t.SubFunc(id.Owner) == nil {
			errs = append(errs, fmt.Errorf("ident %s has dangling owner %d", id.Name, id.Owner))
		}
	}

	// The active map may only point at arena entries of the same name.
	for name, id := range t.active {
		ident := t.Ident(id)
		if ident == nil {
			errs = append(errs, fmt.Errorf("active binding %s points at invalid ident %d", name, id))
		} else if ident.Name != name {
			errs = append(errs, fmt.Errorf("active binding %s points at ident named %s", name, ident.Name))
		}
	}

	// Struct table: dense IDs, acyclic superclass chains, resolvable fields.
	for i := range t.structs {
		st := &t.structs[i]
		if int(st.ID) != i {
			errs = append(errs, fmt.Errorf("struct %d stored at index %d", st.ID, i))
		}
		if st.Superclass.IsValid() {
			steps := 0
			for cur := st.Superclass; cur.IsValid(); steps++ {
				if steps > len(t.structs) {
					errs = append(errs, fmt.Errorf("cyclic superclass chain through %s", st.Name))
					break
				}
				next := t.Struct(cur)
				if next == nil {
					errs = append(errs, fmt.Errorf("struct %s has dangling superclass %d", st.Name, cur))
					break
				}
				cur = next.Superclass
			}
		}
		for _, uf := range st.Fields {
			if t.Field(uf.Field) == nil {
				errs = append(errs, fmt.Errorf("struct %s references unknown field %d", st.Name, uf.Field))
			}
		}
	}

	// Field table: dense IDs, occurrence/classification agreement.
	for i := range t.fields {
		fld := &t.fields[i]
		if int(fld.ID) != i {
			errs = append(errs, fmt.Errorf("field %d stored at index %d", fld.ID, i))
		}
		distinct := map[int32]struct{}{}
		for _, fo := range fld.Offsets {
			distinct[fo.Offset] = struct{}{}
			if t.Struct(fo.Struct) == nil {
				errs = append(errs, fmt.Errorf("field %s occurs in unknown struct %d", fld.Name, fo.Struct))
			}
		}
		if int(fld.DistinctOffsets) != len(distinct) {
			errs = append(errs, fmt.Errorf("field %s counts %d distinct offsets, offsets say %d",
				fld.Name, fld.DistinctOffsets, len(distinct)))
		}
	}

	// Function table: dense IDs, disjoint sibling/specialization chains.
	for i := range t.funcs {
		fn := &t.funcs[i]
		if int(fn.ID) != i {
			errs = append(errs, fmt.Errorf("function %d stored at index %d", fn.ID, i))
		}
		seen := map[int32]bool{fn.NumArgs: true}
		for cur := fn.Sibling; cur.IsValid(); {
			sib := t.Func(cur)
			if sib == nil {
				errs = append(errs, fmt.Errorf("function %s has dangling sibling %d", fn.Name, cur))
				break
			}
			if sib.Name != fn.Name {
				errs = append(errs, fmt.Errorf("function %s sibling %s has a different name", fn.Name, sib.Name))
			}
			if seen[sib.NumArgs] {
				errs = append(errs, fmt.Errorf("function %s has two overloads with %d args", fn.Name, sib.NumArgs))
			}
			seen[sib.NumArgs] = true
			cur = sib.Sibling
		}
		for cur := fn.FirstSpec; cur.IsValid(); {
			sub := t.SubFunc(cur)
			if sub == nil {
				errs = append(errs, fmt.Errorf("function %s has dangling specialization %d", fn.Name, cur))
				break
			}
			if sub.Parent != fn.ID {
				errs = append(errs, fmt.Errorf("specialization %d of %s points back at function %d",
					cur, fn.Name, sub.Parent))
			}
			cur = sub.Next
		}
	}

	return errors.Join(errs...)
}
