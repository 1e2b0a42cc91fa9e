package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
	"rvdis/internal/riscv"
)

// ErrNoCode is returned when a region maps to no bytes of the image.
var ErrNoCode = errors.New("no code at address")

// Region is an address range to disassemble. Count, when positive, stops
// the walk after that many instructions.
type Region struct {
	Name  string
	Start uint64
	Size  uint64
	Count int
}

// TextRegion covers the whole .text section of im.
func TextRegion(im *elfx.Image) Region {
	return Region{Name: im.Text.Name, Start: im.Text.VA, Size: im.Text.Size}
}

// SymbolRegion covers the function named name. A function without a size
// extends to the next symbol or the end of .text.
func SymbolRegion(im *elfx.Image, syms *SymbolTable, name string) (Region, error) {
	fn, ok := im.FindFunction(name)
	if !ok {
		return Region{}, fmt.Errorf("function %q not found", name)
	}
	size := fn.Size
	if size == 0 {
		end := im.Text.VA + im.Text.Size
		for _, s := range syms.Symbols() {
			if s.Addr > fn.Addr {
				end = s.Addr
				break
			}
		}
		if end > fn.Addr {
			size = end - fn.Addr
		}
	}
	return Region{Name: name, Start: fn.Addr, Size: size}, nil
}

// AddressRegion covers count instructions from start, bounded by the
// section holding start.
func AddressRegion(im *elfx.Image, start uint64, count int) (Region, error) {
	if count <= 0 {
		count = DefaultListingCount
	}
	sec, ok := im.SectionAt(start)
	if !ok {
		return Region{}, fmt.Errorf("0x%x: %w", start, ErrNoCode)
	}
	return Region{Name: sec.Name, Start: start, Size: sec.VA + sec.Size - start, Count: count}, nil
}

// Walk decodes the instructions of r in address order and calls fn for
// each. Words the decoder does not know are passed as OpIllegal so the
// walk keeps its alignment.
func Walk(im *elfx.Image, r Region, fn func(pc uint64, inst riscv.Inst) error) error {
	code, ok := im.SliceVA(r.Start, r.Size)
	if !ok || len(code) == 0 {
		return fmt.Errorf("0x%x: %w", r.Start, ErrNoCode)
	}
	limit := r.Count
	if limit <= 0 || limit > MaxListingInstructions {
		limit = MaxListingInstructions
	}
	off := 0
	for n := 0; n < limit && off < len(code); n++ {
		inst, err := riscv.DecodeBytes(code[off:])
		if err != nil {
			slog.Debug("Listing stopped at truncated instruction", "addr", fmt.Sprintf("0x%x", r.Start+uint64(off)))
			break
		}
		if err := fn(r.Start+uint64(off), inst); err != nil {
			return err
		}
		off += inst.Len
	}
	return nil
}

// Listing renders r through sess.
func Listing(im *elfx.Image, r Region, sess *disasm.Session) (disasm.Stream, error) {
	var out disasm.Stream
	err := Walk(im, r, func(pc uint64, inst riscv.Inst) error {
		out = append(out, sess.Render(inst, pc))
		return nil
	})
	return out, err
}

// Print writes r through sess as it is decoded.
func Print(im *elfx.Image, r Region, sess *disasm.Session) error {
	return Walk(im, r, func(pc uint64, inst riscv.Inst) error {
		return sess.Print(inst, pc)
	})
}
