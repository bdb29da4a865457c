package reloc

import (
	"encoding/binary"
	"unsafe"
)

// bytesAt reinterprets the n bytes starting at addr as a byte slice, giving
// the encoders an unaligned-safe read/write window onto raw executable
// memory. The caller (LinkModule) borrows this memory for the duration of
// one call and never retains the slice past it, per the ownership contract
// in spec.md §3/§9.
func bytesAt(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n) //nolint:govet // raw pointer into caller-owned executable memory.
}

func readUint32(addr uintptr) uint32 {
	return binary.LittleEndian.Uint32(bytesAt(addr, 4))
}

func writeUint32(addr uintptr, v uint32) {
	binary.LittleEndian.PutUint32(bytesAt(addr, 4), v)
}

func readUint64(addr uintptr) uint64 {
	return binary.LittleEndian.Uint64(bytesAt(addr, 8))
}

func writeUint64(addr uintptr, v uint64) {
	binary.LittleEndian.PutUint64(bytesAt(addr, 8), v)
}
