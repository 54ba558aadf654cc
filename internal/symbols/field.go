package symbols

// FieldOffset records that one struct stores a field at one byte offset.
type FieldOffset struct {
	Struct StructID
	Offset int32
}

// AccessPlan classifies how the code generator reaches a field at runtime.
type AccessPlan uint8

const (
	// PlanFixed: every struct declaring the field stores it at the same
	// offset; a single fixed-offset instruction suffices.
	PlanFixed AccessPlan = iota
	// PlanBranch: exactly two distinct offsets; a two-way branch on the
	// struct index picks between the cached First and Rest offsets.
	PlanBranch
	// PlanTable: more than two distinct offsets; access routes through an
	// offset-lookup table keyed by struct index.
	PlanTable
)

func (p AccessPlan) String() string {
	switch p {
	case PlanFixed:
		return "fixed"
	case PlanBranch:
		return "branch"
	default:
		return "table"
	}
}

// SharedField is the name-level identity of a struct field: every struct
// declaring a field of this name shares this record, which tracks the byte
// offsets the field occurs at across all of them.
type SharedField struct {
	Name string
	ID   FieldID

	// Offsets holds every (struct, offset) occurrence in declaration order.
	Offsets []FieldOffset
	// DistinctOffsets counts distinct offset values seen; an occurrence
	// repeating a known value does not increment it.
	DistinctOffsets int32

	// First and Rest are valid only while DistinctOffsets == 2: First is
	// the offset with a single occurrence when one side is singular, Rest
	// the offset shared by the others.
	First FieldOffset
	Rest  FieldOffset

	// OffsetTable is the generated-code index of the lookup table used when
	// DistinctOffsets exceeds 2; -1 until the code generator assigns it.
	OffsetTable int32
}

// addUse records a new occurrence and refreshes the distinct-offset caches.
func (sf *SharedField) addUse(fo FieldOffset) {
	seen := false
	for _, o := range sf.Offsets {
		if o.Offset == fo.Offset {
			seen = true
			break
		}
	}
	if !seen {
		sf.DistinctOffsets++
	}
	sf.Offsets = append(sf.Offsets, fo)
	if sf.DistinctOffsets == 2 {
		sf.cacheBranchOffsets()
	}
}

// cacheBranchOffsets picks First/Rest for the two-way branch plan.
func (sf *SharedField) cacheBranchOffsets() {
	a := sf.Offsets[0]
	b := a
	counts := map[int32]int32{}
	for _, o := range sf.Offsets {
		counts[o.Offset]++
		if o.Offset != a.Offset {
			b = o
		}
	}
	if counts[a.Offset] == 1 || counts[b.Offset] != 1 {
		sf.First, sf.Rest = a, b
	} else {
		sf.First, sf.Rest = b, a
	}
}

// Plan reports the access strategy for the current occurrence set. A field
// with no occurrences cannot exist: declaration always records at least one.
func (sf *SharedField) Plan() AccessPlan {
	switch {
	case sf.DistinctOffsets <= 1:
		return PlanFixed
	case sf.DistinctOffsets == 2:
		return PlanBranch
	default:
		return PlanTable
	}
}

// UniqueField is a struct's own slot: the concrete type it stores there plus
// a reference to the name-level SharedField it participates in.
type UniqueField struct {
	Type  Type
	Field FieldID
}
