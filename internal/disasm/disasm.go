// Package disasm renders decoded RISC-V instructions as column-aligned
// listing lines and annotates them with the absolute addresses their
// operands refer to.
//
// A Session owns the per-listing state: the output sink, the column
// position of the line being written and a bounded History of recent
// instructions. The History lets a low-part instruction (addi, a load or
// store) be paired with the lui or auipc that set up its base register
// a few instructions earlier.
package disasm

import "rvdis/internal/riscv"

// Category names the kind of text a colour token is requested for.
type Category uint8

const (
	CategoryReset Category = iota
	CategoryAddress
	CategoryOpcode
	CategoryLabel
)

func (c Category) String() string {
	switch c {
	case CategoryReset:
		return "reset"
	case CategoryAddress:
		return "address"
	case CategoryOpcode:
		return "opcode"
	case CategoryLabel:
		return "label"
	}
	return "unknown"
}

// SymbolLookup resolves an address to a name. With nearest set the lookup
// may return the closest preceding symbol (for example "memcpy+0x1c");
// otherwise only a symbol starting exactly at addr counts.
// Returns ("", false) if unknown.
type SymbolLookup func(addr uint64, nearest bool) (name string, ok bool)

// Colorizer returns the terminal style token for a category. An empty
// token means no styling. Tokens never count toward output columns.
type Colorizer func(Category) string

// NoSymbols is a SymbolLookup that knows no names.
func NoSymbols(uint64, bool) (string, bool) { return "", false }

// NoColor is a Colorizer that never styles anything.
func NoColor(Category) string { return "" }

// Line is one rendered instruction.
type Line struct {
	VA   uint64 // address as displayed (pc minus the pc offset)
	Inst riscv.Inst
	Text string // rendered text including any symbol header, newline terminated

	Target    uint64 // reconstructed address, valid when HasTarget
	HasTarget bool
	Strategy  Strategy
}

// Stream is a linear sequence of rendered instructions.
type Stream []Line
