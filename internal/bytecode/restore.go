package bytecode

import (
	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
	"github.com/OIEIEIO/lobster/internal/symbols"
)

// Validate checks the structural invariants a well-formed image satisfies:
// dense per-table indices and in-range cross-references.
func (im *Image) Validate() error {
	for i, r := range im.Idents {
		if int(r.Index) != i {
			return diag.Errorf(diag.ImgMalformed, "ident %q has index %d at position %d", r.Name, r.Index, i)
		}
	}
	for i, r := range im.Functions {
		if int(r.Index) != i {
			return diag.Errorf(diag.ImgMalformed, "function %q has index %d at position %d", r.Name, r.Index, i)
		}
		if r.CodeStart < 0 || int(r.CodeStart) >= len(im.Code) {
			return diag.Errorf(diag.ImgMalformed, "function %q starts past the code stream", r.Name)
		}
	}
	for i, r := range im.Structs {
		if int(r.Index) != i {
			return diag.Errorf(diag.ImgMalformed, "struct %q has index %d at position %d", r.Name, r.Index, i)
		}
		if r.Superclass >= 0 && int(r.Superclass) >= len(im.Structs) {
			return diag.Errorf(diag.ImgMalformed, "struct %q has out-of-range superclass %d", r.Name, r.Superclass)
		}
	}
	for i, r := range im.Fields {
		if int(r.Index) != i {
			return diag.Errorf(diag.ImgMalformed, "field %q has index %d at position %d", r.Name, r.Index, i)
		}
	}
	for _, li := range im.LineNumbers {
		if li.File.IsValid() && int(li.File) >= len(im.Filenames) {
			return diag.Errorf(diag.ImgMalformed, "line info references unknown file %d", li.File)
		}
	}
	return nil
}

// RestoreTable rebuilds a frozen symbol table from the image's records. The
// result carries no parse-time state; it serves consumers that need reverse
// lookups and struct/function metadata against a loaded image.
func (im *Image) RestoreTable() (*symbols.Table, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	t := symbols.NewTable(symbols.Hints{
		Idents:  uint(len(im.Idents)),
		Structs: uint(len(im.Structs)),
		Fields:  uint(len(im.Fields)),
		Funcs:   uint(len(im.Functions)),
	})
	t.UsesFrameState = im.UsesFrameState
	for _, r := range im.Idents {
		t.RestoreIdent(r.Name, r.Line, r.StaticConstant)
	}
	for _, r := range im.Functions {
		t.RestoreFunction(r.Name, r.NumArgs, r.CodeStart, r.RetVals)
	}
	for _, r := range im.Structs {
		t.RestoreStruct(r.Name, symbols.StructID(r.Superclass), r.ReadOnly)
	}
	for _, r := range im.Fields {
		t.RestoreField(r.Name)
	}
	t.Freeze()
	return t, nil
}

// Files rebuilds the file set the image was compiled from.
func (im *Image) Files() *source.FileSet {
	return source.FileSetFromNames(im.Filenames)
}

// Lines rebuilds the debug line table.
func (im *Image) Lines() *source.LineTable {
	return source.LineTableFromEntries(im.LineNumbers)
}
