package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unsafe"

	"github.com/go-walink/walink/internal/reloc"
)

// fixture is the JSON shape `walink check` consumes: a synthetic link job
// standing in for what a real Wasm front-end + code generator + allocator
// would otherwise produce. It exists purely to exercise internal/reloc end
// to end without wiring a real Wasm toolchain (spec.md §1's "out of
// scope" collaborators); it is not a wire format the core cares about.
type fixture struct {
	Functions              []extentSpec          `json:"functions"`
	Sections               []extentSpec          `json:"sections"`
	Libcalls               map[string]string     `json:"libcalls"` // id -> hex address
	TrampolineSectionIndex uint32                `json:"trampoline_section_index"`
	TrampolineEntryLength  int                   `json:"trampoline_entry_length"`
	FunctionRelocations    []relocationGroupSpec `json:"function_relocations"`
	SectionRelocations     []relocationGroupSpec `json:"section_relocations"`
}

type extentSpec struct {
	Length int `json:"length"`
}

type relocationGroupSpec struct {
	Index   uint32       `json:"index"`
	Records []recordSpec `json:"records"`
}

type recordSpec struct {
	Kind   string     `json:"kind"`
	Offset int        `json:"offset"`
	Target targetSpec `json:"target"`
	Addend int64      `json:"addend"`
	// RawValue is only consulted for RiscvPCRelLo12I, whose "value" is by
	// convention the absolute address of the paired HI20 instruction
	// rather than anything derived from Target (see SPEC_FULL.md §14 and
	// internal/reloc's pairing-table doc comments). Hex, e.g. "0x1000".
	RawValue string `json:"raw_value,omitempty"`
}

type targetSpec struct {
	Type  string `json:"type"` // "function" | "libcall" | "section" | "none"
	Index uint32 `json:"index"`
}

func loadFixture(r io.Reader) (*fixture, error) {
	var f fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// arena backs every function/section extent in a fixture with a single
// pinned byte buffer, matching the way internal/reloc expects raw
// addresses rather than byte slices.
type arena struct {
	buf []byte
}

func newArena(totalSize int) *arena {
	return &arena{buf: make([]byte, totalSize)}
}

func (a *arena) baseAt(offset int) uintptr {
	if len(a.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.buf[0])) + uintptr(offset)
}

// materialize lays out a fixture's functions and sections back to back in
// one arena and returns the allocation maps LinkModule expects.
func materialize(f *fixture) (*arena, reloc.FunctionExtents, reloc.SectionExtents) {
	total := 0
	for _, fn := range f.Functions {
		total += fn.Length
	}
	for _, s := range f.Sections {
		total += s.Length
	}
	a := newArena(total)

	off := 0
	functions := make(reloc.FunctionExtents, len(f.Functions))
	for i, fn := range f.Functions {
		functions[i] = reloc.FunctionExtent{Base: a.baseAt(off), Length: uintptr(fn.Length)}
		off += fn.Length
	}
	sections := make(reloc.SectionExtents, len(f.Sections))
	for i, s := range f.Sections {
		sections[i] = reloc.SectionExtent{Base: a.baseAt(off)}
		off += s.Length
	}
	return a, functions, sections
}

func parseKind(s string) (reloc.Kind, error) {
	k, ok := kindByName[s]
	if !ok {
		return 0, fmt.Errorf("unknown relocation kind %q", s)
	}
	return k, nil
}

var kindByName = map[string]reloc.Kind{
	"Abs8":                    reloc.KindAbs8,
	"X86PCRel4":               reloc.KindX86PCRel4,
	"X86CallPCRel4":           reloc.KindX86CallPCRel4,
	"X86PCRel8":               reloc.KindX86PCRel8,
	"Arm64Call":               reloc.KindArm64Call,
	"Arm64Movw0":              reloc.KindArm64Movw0,
	"Arm64Movw1":              reloc.KindArm64Movw1,
	"Arm64Movw2":              reloc.KindArm64Movw2,
	"Arm64Movw3":              reloc.KindArm64Movw3,
	"Aarch64AdrPrelPgHi21":    reloc.KindAarch64AdrPrelPgHi21,
	"Aarch64AdrPrelLo21":      reloc.KindAarch64AdrPrelLo21,
	"Aarch64AddAbsLo12Nc":     reloc.KindAarch64AddAbsLo12Nc,
	"Aarch64Ldst64AbsLo12Nc":  reloc.KindAarch64Ldst64AbsLo12Nc,
	"Aarch64Ldst128AbsLo12Nc": reloc.KindAarch64Ldst128AbsLo12Nc,
	"RiscvPCRelHi20":          reloc.KindRiscvPCRelHi20,
	"RiscvPCRelLo12I":         reloc.KindRiscvPCRelLo12I,
	"RiscvCall":               reloc.KindRiscvCall,
	"LArchAbsHi20":            reloc.KindLArchAbsHi20,
	"LArchPCAlaHi20":          reloc.KindLArchPCAlaHi20,
	"LArchAbsLo12":            reloc.KindLArchAbsLo12,
	"LArchPCAlaLo12":          reloc.KindLArchPCAlaLo12,
	"LArchAbs64Hi12":          reloc.KindLArchAbs64Hi12,
	"LArchPCAla64Hi12":        reloc.KindLArchPCAla64Hi12,
	"LArchAbs64Lo20":          reloc.KindLArchAbs64Lo20,
	"LArchPCAla64Lo20":        reloc.KindLArchPCAla64Lo20,
	"LArchCall36":             reloc.KindLArchCall36,
}

func parseTarget(t targetSpec) (reloc.Target, error) {
	switch t.Type {
	case "function":
		return reloc.LocalFunction(t.Index), nil
	case "libcall":
		return reloc.LibCall(reloc.LibCallID(t.Index)), nil
	case "section":
		return reloc.CustomSection(t.Index), nil
	case "none", "":
		// A dummy LibCall(0) target, valid only for kinds whose encoder
		// ignores the resolved target address — currently just
		// RiscvPCRelLo12I. For such kinds it still resolves to trampoline
		// entry 0, so the fixture must define the section at
		// trampoline_section_index.
		return reloc.LibCall(0), nil
	default:
		return reloc.Target{}, fmt.Errorf("unknown relocation target type %q", t.Type)
	}
}

func parseHexAddress(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}
