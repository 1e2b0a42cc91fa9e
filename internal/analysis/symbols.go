package analysis

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ianlancetaylor/demangle"

	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
)

// demangleCache memoizes demangled names. The listing asks for the same
// few names on every line of a function.
type demangleCache struct {
	mu    sync.RWMutex
	names map[string]string
	hits  int
}

var cache = &demangleCache{names: make(map[string]string)}

// CachedDemangle returns the demangled form of a C++ or Rust symbol, or
// the name unchanged when it is not mangled.
func CachedDemangle(mangled string) string {
	cache.mu.RLock()
	if d, ok := cache.names[mangled]; ok {
		cache.mu.RUnlock()
		cache.mu.Lock()
		cache.hits++
		cache.mu.Unlock()
		return d
	}
	cache.mu.RUnlock()

	d := demangle.Filter(mangled, demangle.NoClones)

	cache.mu.Lock()
	cache.names[mangled] = d
	cache.mu.Unlock()
	return d
}

// DemangleCacheStats reports the number of cached names and cache hits.
func DemangleCacheStats() (names, hits int) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.names), cache.hits
}

// Symbol is one named address of a SymbolTable.
type Symbol struct {
	Addr uint64
	Size uint64
	Name string // demangled
}

// SymbolTable answers exact and nearest-preceding symbol queries over an
// image's function, object and PLT symbols.
type SymbolTable struct {
	syms []Symbol // sorted by Addr, unique
}

// NewSymbolTable collects the symbols of im. Static symbols win over
// dynamic ones at the same address; PLT stubs are named "name@plt".
func NewSymbolTable(im *elfx.Image) *SymbolTable {
	byAddr := make(map[uint64]Symbol)
	for _, tab := range [][]elfx.Symbol{im.Dynsyms, im.Syms} {
		for _, s := range tab {
			if s.Name == elfx.GlobalPointerSymbol {
				continue
			}
			byAddr[s.Addr] = Symbol{Addr: s.Addr, Size: s.Size, Name: CachedDemangle(s.Name)}
		}
	}
	for addr, name := range im.PLTNames() {
		byAddr[addr] = Symbol{Addr: addr, Size: 16, Name: name}
	}
	syms := make([]Symbol, 0, len(byAddr))
	for _, s := range byAddr {
		syms = append(syms, s)
	}
	return NewSymbolTableFrom(syms)
}

// NewSymbolTableFrom builds a table from explicit symbols. Later entries
// replace earlier ones at the same address.
func NewSymbolTableFrom(syms []Symbol) *SymbolTable {
	out := make([]Symbol, len(syms))
	copy(out, syms)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	uniq := out[:0]
	for _, s := range out {
		if n := len(uniq); n > 0 && uniq[n-1].Addr == s.Addr {
			uniq[n-1] = s
			continue
		}
		uniq = append(uniq, s)
	}
	return &SymbolTable{syms: uniq}
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int { return len(t.syms) }

// Symbols returns the symbols in address order.
func (t *SymbolTable) Symbols() []Symbol { return t.syms }

// At returns the symbol starting exactly at addr.
func (t *SymbolTable) At(addr uint64) (Symbol, bool) {
	i := sort.Search(len(t.syms), func(i int) bool { return t.syms[i].Addr >= addr })
	if i < len(t.syms) && t.syms[i].Addr == addr {
		return t.syms[i], true
	}
	return Symbol{}, false
}

// Containing returns the closest symbol at or below addr. A sized symbol
// only matches addresses inside it.
func (t *SymbolTable) Containing(addr uint64) (Symbol, bool) {
	i := sort.Search(len(t.syms), func(i int) bool { return t.syms[i].Addr > addr })
	if i == 0 {
		return Symbol{}, false
	}
	s := t.syms[i-1]
	if s.Size != 0 && addr >= s.Addr+s.Size {
		return Symbol{}, false
	}
	return s, true
}

// Lookup has the signature of disasm.SymbolLookup. An exact query names
// the symbol at addr; a nearest query renders "name" or "name+0x10".
func (t *SymbolTable) Lookup(addr uint64, nearest bool) (string, bool) {
	if !nearest {
		s, ok := t.At(addr)
		return s.Name, ok
	}
	s, ok := t.Containing(addr)
	if !ok {
		return "", false
	}
	if s.Addr == addr {
		return s.Name, true
	}
	return fmt.Sprintf("%s+0x%x", s.Name, addr-s.Addr), true
}

// PLTLookup falls back to a ".plt+0x10" label for addresses inside the
// PLT section that next cannot name, such as the resolver header.
func PLTLookup(im *elfx.Image, next disasm.SymbolLookup) disasm.SymbolLookup {
	return func(addr uint64, nearest bool) (string, bool) {
		if name, ok := next(addr, nearest); ok {
			return name, true
		}
		if !nearest || !im.IsPLTEntry(addr) {
			return "", false
		}
		if addr == im.PLT.VA {
			return im.PLT.Name, true
		}
		return fmt.Sprintf("%s+0x%x", im.PLT.Name, addr-im.PLT.VA), true
	}
}
