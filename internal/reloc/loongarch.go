package reloc

// 64-bit LoongArch relocation encoders. Abs* and PCAla* kinds share the
// same bit layouts (absolute vs. PC-relative only changes how
// Record.ForAddress computed the value, not how it's encoded here), so
// each pair is driven through one shared function. LArchCall36 is the one
// two-word encoding; see SPEC_FULL.md §9's Open Question about validating
// its second-word layout against the LoongArch ELF ABI.

func encodeLArchHi20(writeAddr uintptr, value uint64) {
	imm20 := (uint32(value>>12) & 0xf_ffff) << 5
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm20|existing)
}

func encodeLArchLo12(writeAddr uintptr, value uint64) {
	imm12 := (uint32(value) & 0xfff) << 10
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm12|existing)
}

func encodeLArch64Hi12(writeAddr uintptr, value uint64) {
	imm12 := (uint32(value>>52) & 0xfff) << 10
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm12|existing)
}

func encodeLArch64Lo20(writeAddr uintptr, value uint64) {
	imm20 := (uint32(value>>32) & 0xf_ffff) << 5
	existing := readUint32(writeAddr)
	writeUint32(writeAddr, imm20|existing)
}

func encodeLArchCall36(writeAddr uintptr, value uint64) {
	word1 := (uint32(value>>18) & 0xf_ffff) << 5
	existing1 := readUint32(writeAddr)
	writeUint32(writeAddr, word1|existing1)

	word2Addr := writeAddr + 4
	word2 := (uint32(value>>2) & 0xffff) << 10
	existing2 := readUint32(word2Addr)
	writeUint32(word2Addr, word2|existing2)
}
