package symbols

// Entity IDs are dense zero-based indices into the table's per-kind arenas.
// They double as reverse-lookup keys and are the values persisted in the
// image, so unlike scope-local handles they must start at zero; -1 marks the
// absence of a reference.

// IdentID identifies an identifier in the ident arena.
type IdentID int32

const NoIdentID IdentID = -1

// IsValid reports whether the ID refers to an allocated ident.
func (id IdentID) IsValid() bool { return id >= 0 }

// StructID identifies a struct declaration in the struct arena.
type StructID int32

const NoStructID StructID = -1

// IsValid reports whether the ID refers to a declared struct.
func (id StructID) IsValid() bool { return id >= 0 }

// FieldID identifies a shared field in the field arena.
type FieldID int32

const NoFieldID FieldID = -1

// IsValid reports whether the ID refers to a declared field name.
func (id FieldID) IsValid() bool { return id >= 0 }

// FuncID identifies a function declaration in the function arena.
type FuncID int32

const NoFuncID FuncID = -1

// IsValid reports whether the ID refers to a declared function.
func (id FuncID) IsValid() bool { return id >= 0 }

// SubFuncID identifies a specialization in the subfunction arena.
type SubFuncID int32

const NoSubFuncID SubFuncID = -1

// IsValid reports whether the ID refers to an allocated specialization.
func (id SubFuncID) IsValid() bool { return id >= 0 }
