package reloc

// RISC-V (32- and 64-bit) relocation encoders. PCRelHi20/PCRelLo12I is the
// one cross-record pair in the whole kind table: the HI20 half stashes its
// delta in pairing, keyed by the HI20 instruction's own write address, and
// the LO12_I half looks that delta up using the address the code generator
// carried as its own "target" (see the convention on the Record interface
// and the Open Question it resolves in spec.md §9).

// pairingTable maps the absolute address of an HI20 instruction word to the
// 32-bit delta it encoded. Scoped to a single LinkModule call.
type pairingTable map[uintptr]uint32

func encodeRiscvPCRelHi20(writeAddr uintptr, value uint64, pairing pairingTable) {
	pairing[writeAddr] = uint32(value)

	sum := value + 0x800
	imm20 := uint32(sum) & 0xffff_f000
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm20|existing)
}

func encodeRiscvPCRelLo12I(writeAddr uintptr, hi20InstrAddr uint64, pairing pairingTable) {
	hi20Delta, ok := pairing[uintptr(hi20InstrAddr)]
	if !ok {
		panic(newLinkError("RiscvPCRelLo12I at %#x has no matching RiscvPCRelHi20 at %#x", writeAddr, hi20InstrAddr))
	}
	imm12 := (hi20Delta & 0xfff) << 20
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm12|existing)
}

func encodeRiscvCall(writeAddr uintptr, value uint64) {
	lo := (value & 0xfff) << 52
	hi := (value + 0x800) & 0xffff_f000
	existing := readUint64(writeAddr)
	writeUint64(writeAddr, lo|hi|existing)
}
