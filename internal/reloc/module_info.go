package reloc

// ModuleInfo is the module metadata produced by the Wasm front-end. The
// core never reads it — spec.md §6 calls it "read-only, unused by the core
// itself" — it is threaded through LinkModule purely so a caller can pass
// the same value it uses for diagnostics without a second lookup.
// cmd/walink passes a zero ModuleInfo.
type ModuleInfo struct {
	Name string
}
