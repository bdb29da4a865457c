package reloc

// AArch64/ARM64 relocation encoders. Branch and ADRP/ADR kinds are
// range-restricted and abort via LinkError when the computed delta does
// not fit, mirroring the original Wasmer linker's asserts verbatim (see
// DESIGN.md / SPEC_FULL.md §14 for the exact boundary values).

const (
	arm64CallMaxAbsDelta = 1 << 28 // exclusive: abs(delta) must be < this.

	aarch64AdrpMinDelta = -(int64(1) << 32)
	aarch64AdrpMaxDelta = int64(1) << 32 // exclusive.

	aarch64AdrMinDelta = -(int64(1) << 20)
	aarch64AdrMaxDelta = int64(1) << 20 // exclusive.
)

func encodeArm64Call(writeAddr uintptr, value uint64) {
	delta := int64(value)
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	if abs >= arm64CallMaxAbsDelta {
		panic(newLinkError("Arm64Call relocation delta %d out of range (|delta| must be < 2^28)", delta))
	}
	imm26 := uint32(delta/4) & 0x03ff_ffff
	existing := readUint32(writeAddr) & 0xfc00_0000
	writeUint32(writeAddr, imm26|existing)
}

// encodeArm64Movw patches 16-bit chunk k (0..3) of value into the existing
// MOVZ/MOVK opcode's imm16 field at bit 5.
func encodeArm64Movw(k uint, writeAddr uintptr, value uint64) {
	chunk := uint32((value >> (16 * k)) & 0xffff)
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, (chunk<<5)|existing)
}

func encodeAarch64AdrPrelPgHi21(writeAddr uintptr, value uint64) {
	delta := int64(value)
	if delta < aarch64AdrpMinDelta || delta >= aarch64AdrpMaxDelta {
		panic(newLinkError("Aarch64AdrPrelPgHi21 relocation delta %d out of ±4GB range", delta))
	}
	writeUint32(writeAddr, patchAdrImmediate(readUint32(writeAddr), delta>>12))
}

func encodeAarch64AdrPrelLo21(writeAddr uintptr, value uint64) {
	delta := int64(value)
	if delta < aarch64AdrMinDelta || delta >= aarch64AdrMaxDelta {
		panic(newLinkError("Aarch64AdrPrelLo21 relocation delta %d too large for a 20-bit immediate", delta))
	}
	writeUint32(writeAddr, patchAdrImmediate(readUint32(writeAddr), delta))
}

// patchAdrImmediate writes the ADR/ADRP split immediate: immlo (bits
// [30:29]) holds the low 2 bits of d, immhi (bits [23:5]) holds the next 19
// bits, all other opcode bits are preserved.
func patchAdrImmediate(op uint32, d int64) uint32 {
	immlo := uint32(d) & 0b11
	immhi := (uint32(d) >> 2) & 0x7_ffff
	mask := ^((uint32(0x7_ffff) << 5) | (uint32(0b11) << 29))
	return (op & mask) | (immlo << 29) | (immhi << 5)
}

func encodeAarch64AddAbsLo12Nc(writeAddr uintptr, value uint64) {
	imm := uint32(value) & 0xfff
	mask := ^(uint32(0xfff) << 10)
	op := readUint32(writeAddr)
	writeUint32(writeAddr, (op&mask)|(imm<<10))
}

func encodeAarch64Ldst64AbsLo12Nc(writeAddr uintptr, value uint64) {
	imm := (uint32(value) & 0xfff) >> 3
	op := readUint32(writeAddr) & 0xffc0_03ff
	writeUint32(writeAddr, (imm<<10)|op)
}

func encodeAarch64Ldst128AbsLo12Nc(writeAddr uintptr, value uint64) {
	imm := (uint32(value) & 0xfff) >> 4
	op := readUint32(writeAddr) & 0xffc0_03ff
	writeUint32(writeAddr, (imm<<10)|op)
}
