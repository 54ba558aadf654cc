package bytecode

import (
	"io"

	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
	"github.com/OIEIEIO/lobster/internal/symbols"
)

// Per-entity persistence is intentionally partial: only the fields a later
// run needs to reconstruct external behavior are written. Parse-time state
// (scope depths, shadow chains, field occurrence lists) stays behind.

// IdentRecord is the persisted slice of an Ident.
type IdentRecord struct {
	Name           string
	Index          int32
	Line           int32
	StaticConstant bool
}

func (r *IdentRecord) transfer(s *Serializer) error {
	if err := s.String(&r.Name); err != nil {
		return err
	}
	if err := s.Int32(&r.Index); err != nil {
		return err
	}
	if err := s.Int32(&r.Line); err != nil {
		return err
	}
	return s.Bool(&r.StaticConstant)
}

// FunctionRecord is the persisted slice of a Function.
type FunctionRecord struct {
	Name      string
	Index     int32
	NumArgs   int32
	CodeStart int32
	RetVals   int32
}

func (r *FunctionRecord) transfer(s *Serializer) error {
	if err := s.String(&r.Name); err != nil {
		return err
	}
	if err := s.Int32(&r.Index); err != nil {
		return err
	}
	if err := s.Int32(&r.NumArgs); err != nil {
		return err
	}
	if err := s.Int32(&r.CodeStart); err != nil {
		return err
	}
	return s.Int32(&r.RetVals)
}

// StructRecord is the persisted slice of a Struct.
type StructRecord struct {
	Name       string
	Index      int32
	Superclass int32
	ReadOnly   bool
}

func (r *StructRecord) transfer(s *Serializer) error {
	if err := s.String(&r.Name); err != nil {
		return err
	}
	if err := s.Int32(&r.Index); err != nil {
		return err
	}
	if err := s.Int32(&r.Superclass); err != nil {
		return err
	}
	return s.Bool(&r.ReadOnly)
}

// FieldRecord is the persisted slice of a SharedField.
type FieldRecord struct {
	Name  string
	Index int32
}

func (r *FieldRecord) transfer(s *Serializer) error {
	if err := s.String(&r.Name); err != nil {
		return err
	}
	return s.Int32(&r.Index)
}

type lineRecord struct {
	Line int32
	File int32
	PC   int32
}

func (r *lineRecord) transfer(s *Serializer) error {
	if err := s.Int32(&r.Line); err != nil {
		return err
	}
	if err := s.Int32(&r.File); err != nil {
		return err
	}
	return s.Int32(&r.PC)
}

// Image is one persisted compile: the resolved symbol universe plus the
// generated instruction stream and debug line table.
type Image struct {
	Token          string
	UsesFrameState bool

	Idents    []IdentRecord
	Functions []FunctionRecord
	Structs   []StructRecord
	Fields    []FieldRecord

	Code        []int32
	Filenames   []string
	LineNumbers []source.LineInfo
}

// Snapshot captures a frozen table, instruction stream and debug info as an
// image ready to be written.
func Snapshot(token string, t *symbols.Table, code []int32, files *source.FileSet, lines *source.LineTable) (*Image, error) {
	if t.State() != symbols.Frozen {
		return nil, diag.Errorf(diag.ImgTableNotFrozen, "cannot serialize a building symbol table")
	}
	im := &Image{
		Token:          token,
		UsesFrameState: t.UsesFrameState,
		Code:           code,
	}
	if files != nil {
		im.Filenames = files.Names()
	}
	if lines != nil {
		im.LineNumbers = lines.Entries()
	}
	for i := 0; i < t.NumIdents(); i++ {
		id := t.Ident(symbols.IdentID(i))
		im.Idents = append(im.Idents, IdentRecord{
			Name:           id.Name,
			Index:          int32(id.ID),
			Line:           id.Line,
			StaticConstant: id.Flags&symbols.IdentStaticConstant != 0,
		})
	}
	for i := 0; i < t.NumFuncs(); i++ {
		fn := t.Func(symbols.FuncID(i))
		im.Functions = append(im.Functions, FunctionRecord{
			Name:      fn.Name,
			Index:     int32(fn.ID),
			NumArgs:   fn.NumArgs,
			CodeStart: fn.CodeStart,
			RetVals:   fn.RetVals,
		})
	}
	for i := 0; i < t.NumStructs(); i++ {
		st := t.Struct(symbols.StructID(i))
		im.Structs = append(im.Structs, StructRecord{
			Name:       st.Name,
			Index:      int32(st.ID),
			Superclass: int32(st.Superclass),
			ReadOnly:   st.ReadOnly,
		})
	}
	for i := 0; i < t.NumFields(); i++ {
		fld := t.Field(symbols.FieldID(i))
		im.Fields = append(im.Fields, FieldRecord{
			Name:  fld.Name,
			Index: int32(fld.ID),
		})
	}
	return im, nil
}

// Write serializes the image in the fixed field order of the format:
// version token, frame-state flag, ident/function/struct/field tables,
// code, filenames, line numbers. The ordering is load-bearing; readers
// consume the exact same sequence.
func (im *Image) Write(w io.Writer) error {
	s := NewWriter(w)
	if err := s.String(&im.Token); err != nil {
		return err
	}
	return im.transferBody(s)
}

// Read deserializes an image, first checking the version token against the
// running compiler's build identity. A token mismatch fails before any
// table is populated; no cross-version loading is supported.
func Read(r io.Reader, expectedToken string) (*Image, error) {
	s := NewReader(r)
	im := &Image{}
	if err := s.String(&im.Token); err != nil {
		return nil, err
	}
	if im.Token != expectedToken {
		return nil, diag.Errorf(diag.ImgVersionMismatch,
			"cannot load bytecode from a different version of the compiler (image %q, compiler %q)",
			im.Token, expectedToken)
	}
	if err := im.transferBody(s); err != nil {
		return nil, err
	}
	return im, nil
}

func (im *Image) transferBody(s *Serializer) error {
	if err := s.Bool(&im.UsesFrameState); err != nil {
		return err
	}
	if err := transferSeq(s, &im.Idents); err != nil {
		return err
	}
	if err := transferSeq(s, &im.Functions); err != nil {
		return err
	}
	if err := transferSeq(s, &im.Structs); err != nil {
		return err
	}
	if err := transferSeq(s, &im.Fields); err != nil {
		return err
	}
	if err := s.Int32Slice(&im.Code); err != nil {
		return err
	}
	if err := s.StringSlice(&im.Filenames); err != nil {
		return err
	}
	return im.transferLines(s)
}

func (im *Image) transferLines(s *Serializer) error {
	n := len(im.LineNumbers)
	if err := s.SeqLen(&n); err != nil {
		return err
	}
	if !s.Writing() {
		im.LineNumbers = make([]source.LineInfo, n)
	}
	for i := range im.LineNumbers {
		li := &im.LineNumbers[i]
		rec := lineRecord{Line: li.Line, File: int32(li.File), PC: li.PC}
		if err := rec.transfer(s); err != nil {
			return err
		}
		*li = source.LineInfo{Line: rec.Line, File: source.FileID(rec.File), PC: rec.PC}
	}
	return nil
}

// transferable is any record that moves itself through a serializer.
type transferable interface {
	transfer(s *Serializer) error
}

// transferSeq moves an ordered entity sequence: length first, then each
// record's own transfer in order.
func transferSeq[T any, PT interface {
	transferable
	*T
}](s *Serializer, seq *[]T) error {
	n := len(*seq)
	if err := s.SeqLen(&n); err != nil {
		return err
	}
	if !s.Writing() {
		*seq = make([]T, n)
	}
	for i := range *seq {
		if err := PT(&(*seq)[i]).transfer(s); err != nil {
			return err
		}
	}
	return nil
}
