package reloc

// FunctionExtent is the placement of one compiled function body in
// executable memory, as reported by the allocator. It is immutable once
// created; the bytes within [Base, Base+Length) are mutated exactly once
// during linking.
type FunctionExtent struct {
	Base   uintptr
	Length uintptr
}

// SectionExtent is the placement of one read-only data or trampoline
// section in executable memory. Length is implicit: it is recovered from
// the relocation records that target the section, as in spec.md's data
// model.
type SectionExtent struct {
	Base uintptr
}

// FunctionExtents is a dense, index-addressed allocation map from local
// function index to its extent, mirroring the ordered PrimaryMap used by
// the Wasmer linker this core is ported from. Index i must be populated by
// the allocator before linking; an out-of-range index is a fatal
// programming bug per spec.md's invariants, so accessors panic rather than
// returning an error.
type FunctionExtents []FunctionExtent

func (e FunctionExtents) at(i uint32) FunctionExtent {
	if int(i) >= len(e) {
		panic(newLinkError("function extent index out of range: %d (have %d)", i, len(e)))
	}
	return e[i]
}

// SectionExtents is the section-indexed counterpart of FunctionExtents.
type SectionExtents []SectionExtent

func (e SectionExtents) at(i uint32) SectionExtent {
	if int(i) >= len(e) {
		panic(newLinkError("section extent index out of range: %d (have %d)", i, len(e)))
	}
	return e[i]
}
