package diag

import "fmt"

// Code is a compact numeric identifier for a diagnostic with a stable string
// form. Symbol-table codes live in the 3000 range, image codes in 5000.
type Code uint16

const (
	UnknownCode Code = 0

	// Symbol resolution
	SymDuplicateDeclaration      Code = 3001
	SymUnknownIdentifier         Code = 3002
	SymUnknownType               Code = 3003
	SymAmbiguousFieldAccess      Code = 3004
	SymDuplicateWithType         Code = 3005
	SymShadowConflict            Code = 3006
	SymInconsistentOverloadScope Code = 3007
	SymAssignToConstant          Code = 3008
	SymCyclicSuperclass          Code = 3009
	SymTableFrozen               Code = 3010

	// Persisted image
	ImgVersionMismatch Code = 5001
	ImgMalformed       Code = 5002
	ImgTableNotFrozen  Code = 5003
)

func (c Code) String() string {
	switch {
	case c >= 5000:
		return fmt.Sprintf("IMG%04d", uint16(c))
	case c >= 3000:
		return fmt.Sprintf("SYM%04d", uint16(c))
	default:
		return fmt.Sprintf("DIAG%04d", uint16(c))
	}
}
