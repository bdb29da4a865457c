package reloc

// targetAddress computes the absolute runtime address a Target refers to,
// per spec.md §4.1. For a LibCall target under a kind that admits a full
// 64-bit immediate, the libcall's own implementation address is used;
// otherwise the call is routed through the pre-allocated trampoline
// section so that range-restricted kinds never need to reach the (possibly
// far away) libcall implementation directly.
func targetAddress(
	t Target,
	kind Kind,
	functions FunctionExtents,
	sections SectionExtents,
	libcalls LibcallRegistry,
	tramp trampolines,
) uint64 {
	switch t.tag {
	case tagLocalFunction:
		return uint64(functions.at(t.localFunction).Base)
	case tagCustomSection:
		return uint64(sections.at(t.customSection).Base)
	case tagLibCall:
		if kind.admitsDirectLibcall() {
			return libcalls.Address(t.libCall)
		}
		return tramp.entryAddress(sections, t.libCall)
	default:
		panic(newLinkError("unknown relocation target tag %d", t.tag))
	}
}
