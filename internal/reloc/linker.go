package reloc

// FunctionRelocations is one function's slice of relocation records, keyed
// by the function's index in the allocation map. LinkModule accepts these
// in caller-provided order; within one body no two records may write
// overlapping bytes (a contract on the code generator, not checked here).
type FunctionRelocations struct {
	Index   uint32
	Records []Record
}

// SectionRelocations is the section counterpart of FunctionRelocations.
type SectionRelocations struct {
	Index   uint32
	Records []Record
}

// LinkModule patches every function and section body with its relocations,
// resolving LocalFunction/CustomSection/LibCall targets against the
// allocation map and libcall registry. It is synchronous, allocates no
// goroutines, and performs no I/O (spec.md §5).
//
// Sections are linked before functions so that a RISC-V KindRiscvPCRelHi20
// placed in a section is visible to a KindRiscvPCRelLo12I consumer in a
// function body (spec.md §4.3, §9). The reverse is not paired: a
// KindRiscvPCRelLo12I in a section is applied before any function's
// KindRiscvPCRelHi20 and aborts as unpaired. The pairing table used
// for that handoff is allocated here and discarded on return; it must not
// be reused across calls.
//
// LinkModule panics (via LinkError) on an unsupported kind, a range
// overflow on a range-restricted kind, or an unpaired LO12_I — see
// spec.md §7. Every other input is assumed well-formed, produced by a
// trusted in-process code generator.
func LinkModule(
	_ ModuleInfo,
	functions FunctionExtents,
	functionRelocations []FunctionRelocations,
	sections SectionExtents,
	sectionRelocations []SectionRelocations,
	trampolineSectionIndex uint32,
	trampolineEntryLength uintptr,
	libcalls LibcallRegistry,
) {
	pairing := make(pairingTable)
	tramp := trampolines{sectionIndex: trampolineSectionIndex, entryLength: trampolineEntryLength}

	for _, sr := range sectionRelocations {
		body := sections.at(sr.Index).Base
		for _, r := range sr.Records {
			applyRelocation(body, r, functions, sections, libcalls, tramp, pairing)
		}
	}
	for _, fr := range functionRelocations {
		body := functions.at(fr.Index).Base
		for _, r := range fr.Records {
			applyRelocation(body, r, functions, sections, libcalls, tramp, pairing)
		}
	}
}

// applyRelocation patches the bytes for a single record, dispatching on
// Kind per the bit-layout table in spec.md §4.2.
func applyRelocation(
	body uintptr,
	r Record,
	functions FunctionExtents,
	sections SectionExtents,
	libcalls LibcallRegistry,
	tramp trampolines,
	pairing pairingTable,
) {
	kind := r.Kind()
	targetAbs := targetAddress(r.RelocTarget(), kind, functions, sections, libcalls, tramp)
	writeAddr, value := r.ForAddress(body, targetAbs)

	switch kind {
	case KindAbs8:
		encodeAbs8(writeAddr, value)
	case KindX86PCRel4:
		encodeX86PCRel4(writeAddr, value)
	case KindX86CallPCRel4:
		encodeX86CallPCRel4(writeAddr, value)
	case KindX86PCRel8:
		encodeX86PCRel8(writeAddr, value)

	case KindArm64Call:
		encodeArm64Call(writeAddr, value)
	case KindArm64Movw0:
		encodeArm64Movw(0, writeAddr, value)
	case KindArm64Movw1:
		encodeArm64Movw(1, writeAddr, value)
	case KindArm64Movw2:
		encodeArm64Movw(2, writeAddr, value)
	case KindArm64Movw3:
		encodeArm64Movw(3, writeAddr, value)
	case KindAarch64AdrPrelPgHi21:
		encodeAarch64AdrPrelPgHi21(writeAddr, value)
	case KindAarch64AdrPrelLo21:
		encodeAarch64AdrPrelLo21(writeAddr, value)
	case KindAarch64AddAbsLo12Nc:
		encodeAarch64AddAbsLo12Nc(writeAddr, value)
	case KindAarch64Ldst64AbsLo12Nc:
		encodeAarch64Ldst64AbsLo12Nc(writeAddr, value)
	case KindAarch64Ldst128AbsLo12Nc:
		encodeAarch64Ldst128AbsLo12Nc(writeAddr, value)

	case KindRiscvPCRelHi20:
		encodeRiscvPCRelHi20(writeAddr, value, pairing)
	case KindRiscvPCRelLo12I:
		encodeRiscvPCRelLo12I(writeAddr, value, pairing)
	case KindRiscvCall:
		encodeRiscvCall(writeAddr, value)

	case KindLArchAbsHi20, KindLArchPCAlaHi20:
		encodeLArchHi20(writeAddr, value)
	case KindLArchAbsLo12, KindLArchPCAlaLo12:
		encodeLArchLo12(writeAddr, value)
	case KindLArchAbs64Hi12, KindLArchPCAla64Hi12:
		encodeLArch64Hi12(writeAddr, value)
	case KindLArchAbs64Lo20, KindLArchPCAla64Lo20:
		encodeLArch64Lo20(writeAddr, value)
	case KindLArchCall36:
		encodeLArchCall36(writeAddr, value)

	default:
		panic(newLinkError("relocation kind unsupported in the current architecture: %s", kind))
	}
}
