package main

import (
	"fmt"

	"github.com/go-walink/walink/internal/reloc"
)

// libcallTable is the fixture-driven stand-in for the runtime's libcall
// registry described in spec.md §1/§6. Addresses are opaque uint64s here;
// a real embedding would resolve them against actual function pointers.
type libcallTable map[reloc.LibCallID]uint64

func (t libcallTable) Address(id reloc.LibCallID) uint64 { return t[id] }

func buildLibcallTable(spec map[string]string) (libcallTable, error) {
	t := make(libcallTable, len(spec))
	for k, v := range spec {
		var id uint32
		if _, err := fmt.Sscanf(k, "%d", &id); err != nil {
			return nil, fmt.Errorf("libcall id %q: %w", k, err)
		}
		addr, err := parseHexAddress(v)
		if err != nil {
			return nil, fmt.Errorf("libcall %s address %q: %w", k, v, err)
		}
		t[reloc.LibCallID(id)] = addr
	}
	return t, nil
}
