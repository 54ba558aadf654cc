package bytecode

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/OIEIEIO/lobster/internal/diag"
)

// Serializer is the single transfer abstraction the image format is written
// against: one instance is either writing or reading, and every transfer
// method moves one value in the direction of the mode. Keeping both
// directions in one call site per field is what guarantees the byte layout
// stays symmetric.
type Serializer struct {
	enc *msgpack.Encoder
	dec *msgpack.Decoder
}

// NewWriter returns a writing serializer over w.
func NewWriter(w io.Writer) *Serializer {
	return &Serializer{enc: msgpack.NewEncoder(w)}
}

// NewReader returns a reading serializer over r.
func NewReader(r io.Reader) *Serializer {
	return &Serializer{dec: msgpack.NewDecoder(r)}
}

// Writing reports the mode.
func (s *Serializer) Writing() bool { return s.enc != nil }

// Bool transfers one boolean.
func (s *Serializer) Bool(v *bool) error {
	if s.Writing() {
		return s.enc.EncodeBool(*v)
	}
	got, err := s.dec.DecodeBool()
	if err != nil {
		return malformed("bool", err)
	}
	*v = got
	return nil
}

// Int32 transfers one integer.
func (s *Serializer) Int32(v *int32) error {
	if s.Writing() {
		return s.enc.EncodeInt(int64(*v))
	}
	wide, err := s.dec.DecodeInt64()
	if err != nil {
		return malformed("int", err)
	}
	got, err := safecast.Conv[int32](wide)
	if err != nil {
		return malformed("int", err)
	}
	*v = got
	return nil
}

// String transfers one string.
func (s *Serializer) String(v *string) error {
	if s.Writing() {
		return s.enc.EncodeString(*v)
	}
	got, err := s.dec.DecodeString()
	if err != nil {
		return malformed("string", err)
	}
	*v = got
	return nil
}

// SeqLen transfers a sequence length. Writers pass the length to emit;
// readers receive the length to loop over.
func (s *Serializer) SeqLen(n *int) error {
	if s.Writing() {
		return s.enc.EncodeArrayLen(*n)
	}
	got, err := s.dec.DecodeArrayLen()
	if err != nil {
		return malformed("sequence length", err)
	}
	if got < 0 {
		return malformed("sequence length", fmt.Errorf("negative length %d", got))
	}
	*n = got
	return nil
}

// Int32Slice transfers an ordered integer sequence.
func (s *Serializer) Int32Slice(v *[]int32) error {
	n := len(*v)
	if err := s.SeqLen(&n); err != nil {
		return err
	}
	if !s.Writing() {
		*v = make([]int32, n)
	}
	for i := 0; i < n; i++ {
		if err := s.Int32(&(*v)[i]); err != nil {
			return err
		}
	}
	return nil
}

// StringSlice transfers an ordered string sequence.
func (s *Serializer) StringSlice(v *[]string) error {
	n := len(*v)
	if err := s.SeqLen(&n); err != nil {
		return err
	}
	if !s.Writing() {
		*v = make([]string, n)
	}
	for i := 0; i < n; i++ {
		if err := s.String(&(*v)[i]); err != nil {
			return err
		}
	}
	return nil
}

func malformed(what string, err error) error {
	return diag.Errorf(diag.ImgMalformed, "malformed image: reading %s: %v", what, err)
}
