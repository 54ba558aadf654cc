package symbols

// TypeKind enumerates the base types the checker can infer for a binding.
type TypeKind uint8

const (
	KindUndefined TypeKind = iota
	KindAny
	KindNil
	KindInt
	KindFloat
	KindString
	KindVector
	KindStruct
	KindFunction
)

func (k TypeKind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	default:
		return "undefined"
	}
}

// Type is an inferred type. Struct is only meaningful for KindStruct and
// refers into the struct arena.
type Type struct {
	Kind   TypeKind
	Struct StructID
}

// StructType builds a struct type referencing a declared struct.
func StructType(id StructID) Type {
	return Type{Kind: KindStruct, Struct: id}
}

// Undefined is the zero type of a not-yet-inferred binding.
var Undefined = Type{Kind: KindUndefined, Struct: NoStructID}
