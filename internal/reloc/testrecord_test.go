package reloc

// fakeRecord is a minimal Record used across the package's tests. value
// computes what ForAddress returns: a PC-relative delta (signed, encoded as
// the bit pattern of int64) or an absolute address for most kinds; for KindRiscvPCRelLo12I it instead carries the absolute
// address of the paired HI20 instruction, per the pairing-table
// convention.
type fakeRecord struct {
	kind   Kind
	offset uintptr
	target Target
	value  func(body uintptr, targetAbs uint64) uint64
}

func (f fakeRecord) Kind() Kind          { return f.kind }
func (f fakeRecord) RelocTarget() Target { return f.target }

func (f fakeRecord) ForAddress(body uintptr, targetAbs uint64) (uintptr, uint64) {
	return body + f.offset, f.value(body, targetAbs)
}

// pcRelDelta builds a fakeRecord whose value is the signed PC-relative
// delta from the write site (body+offset) to the resolved target, plus
// addend.
func pcRelDelta(kind Kind, offset uintptr, target Target, addend int64) fakeRecord {
	return fakeRecord{
		kind:   kind,
		offset: offset,
		target: target,
		value: func(body uintptr, targetAbs uint64) uint64 {
			delta := int64(targetAbs) - int64(body+offset) + addend
			return uint64(delta)
		},
	}
}

// absValue builds a fakeRecord whose value is simply the resolved target
// address plus addend.
func absValue(kind Kind, offset uintptr, target Target, addend int64) fakeRecord {
	return fakeRecord{
		kind:   kind,
		offset: offset,
		target: target,
		value: func(_ uintptr, targetAbs uint64) uint64 {
			return uint64(int64(targetAbs) + addend)
		},
	}
}

// fixedValue builds a fakeRecord that ignores body/target and always
// returns v — used for KindRiscvPCRelLo12I, whose "value" is the
// HI20 instruction's own absolute address, not a function of the record's
// nominal target.
func fixedValue(kind Kind, offset uintptr, v uint64) fakeRecord {
	return fakeRecord{
		kind:   kind,
		offset: offset,
		target: LocalFunction(0),
		value: func(_ uintptr, _ uint64) uint64 {
			return v
		},
	}
}

type fakeLibcalls map[LibCallID]uint64

func (f fakeLibcalls) Address(id LibCallID) uint64 { return f[id] }
