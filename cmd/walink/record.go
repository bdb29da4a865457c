package main

import (
	"fmt"

	"github.com/go-walink/walink/internal/reloc"
)

// valueCategory says how a jsonRecord turns (body, targetAbs) into the
// value internal/reloc.Record.ForAddress must return: an absolute address,
// a PC-relative delta from the write site, or (for RiscvPCRelLo12I only) a
// literal carried value unrelated to the resolved target.
type valueCategory uint8

const (
	categoryAbsolute valueCategory = iota
	categoryPCRelativeDelta
	categoryRaw
)

var kindCategory = map[reloc.Kind]valueCategory{
	reloc.KindAbs8:                    categoryAbsolute,
	reloc.KindX86PCRel4:               categoryPCRelativeDelta,
	reloc.KindX86CallPCRel4:           categoryPCRelativeDelta,
	reloc.KindX86PCRel8:               categoryPCRelativeDelta,
	reloc.KindArm64Call:               categoryPCRelativeDelta,
	reloc.KindArm64Movw0:              categoryAbsolute,
	reloc.KindArm64Movw1:              categoryAbsolute,
	reloc.KindArm64Movw2:              categoryAbsolute,
	reloc.KindArm64Movw3:              categoryAbsolute,
	reloc.KindAarch64AdrPrelPgHi21:    categoryPCRelativeDelta,
	reloc.KindAarch64AdrPrelLo21:      categoryPCRelativeDelta,
	reloc.KindAarch64AddAbsLo12Nc:     categoryAbsolute,
	reloc.KindAarch64Ldst64AbsLo12Nc:  categoryAbsolute,
	reloc.KindAarch64Ldst128AbsLo12Nc: categoryAbsolute,
	reloc.KindRiscvPCRelHi20:          categoryAbsolute,
	reloc.KindRiscvPCRelLo12I:         categoryRaw,
	reloc.KindRiscvCall:               categoryPCRelativeDelta,
	reloc.KindLArchAbsHi20:            categoryAbsolute,
	reloc.KindLArchPCAlaHi20:          categoryPCRelativeDelta,
	reloc.KindLArchAbsLo12:            categoryAbsolute,
	reloc.KindLArchPCAlaLo12:          categoryPCRelativeDelta,
	reloc.KindLArchAbs64Hi12:          categoryAbsolute,
	reloc.KindLArchPCAla64Hi12:        categoryPCRelativeDelta,
	reloc.KindLArchAbs64Lo20:          categoryAbsolute,
	reloc.KindLArchPCAla64Lo20:        categoryPCRelativeDelta,
	reloc.KindLArchCall36:             categoryPCRelativeDelta,
}

// jsonRecord adapts one recordSpec into an internal/reloc.Record.
type jsonRecord struct {
	kind     reloc.Kind
	offset   uintptr
	target   reloc.Target
	addend   int64
	rawValue uint64
}

func (r jsonRecord) Kind() reloc.Kind          { return r.kind }
func (r jsonRecord) RelocTarget() reloc.Target { return r.target }

func (r jsonRecord) ForAddress(body uintptr, targetAbs uint64) (uintptr, uint64) {
	writeAddr := body + r.offset
	switch kindCategory[r.kind] {
	case categoryAbsolute:
		return writeAddr, uint64(int64(targetAbs) + r.addend)
	case categoryRaw:
		return writeAddr, r.rawValue
	default: // categoryPCRelativeDelta
		delta := int64(targetAbs) - int64(writeAddr) + r.addend
		return writeAddr, uint64(delta)
	}
}

func buildRecord(spec recordSpec) (jsonRecord, error) {
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return jsonRecord{}, err
	}
	target, err := parseTarget(spec.Target)
	if err != nil {
		return jsonRecord{}, err
	}
	r := jsonRecord{kind: kind, offset: uintptr(spec.Offset), target: target, addend: spec.Addend}
	if kind == reloc.KindRiscvPCRelLo12I {
		if spec.RawValue == "" {
			return jsonRecord{}, fmt.Errorf("RiscvPCRelLo12I record at offset %d requires raw_value", spec.Offset)
		}
		v, err := parseHexAddress(spec.RawValue)
		if err != nil {
			return jsonRecord{}, fmt.Errorf("raw_value: %w", err)
		}
		r.rawValue = v
	}
	return r, nil
}
