package reloc

// x86-64 relocation encoders. All four kinds are plain stores of the
// kind-specific value computed by Record.ForAddress — x86 has no
// instruction-word bitfield to preserve, unlike the RISC/ARM kinds below.

func encodeAbs8(writeAddr uintptr, value uint64) {
	writeUint64(writeAddr, value)
}

func encodeX86PCRel4(writeAddr uintptr, value uint64) {
	writeUint32(writeAddr, uint32(value))
}

func encodeX86CallPCRel4(writeAddr uintptr, value uint64) {
	writeUint32(writeAddr, uint32(value))
}

func encodeX86PCRel8(writeAddr uintptr, value uint64) {
	writeUint64(writeAddr, value)
}
