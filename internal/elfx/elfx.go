// Package elfx opens RISC-V ELF binaries, locates their sections and
// symbols, and maps virtual addresses to bytes of the memory-mapped file.
package elfx

import (
	"debug/elf"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"rvdis/internal/disasm"
	"rvdis/internal/riscv"
)

// ErrNotRISCV is returned by Open for ELF files of another machine.
var ErrNotRISCV = errors.New("not a RISC-V ELF file")

// GlobalPointerSymbol is the linker-defined symbol gp is loaded from.
const GlobalPointerSymbol = "__global_pointer$"

type Image struct {
	Path     string
	File     *elf.File
	All      []byte
	Loads    []Seg
	Sections []Section // allocated sections in address order
	Text     Section
	Rodata   Section
	Data     Section
	SData    Section
	PLT      Section
	Dynsyms  []Symbol
	Syms     []Symbol
	PLTStubs []PLTStub
	PLTRels  []PLTRel
	Entry    uint64
	GP       uint64
	HasGP    bool
	f        *os.File
}

type Seg struct {
	Vaddr, Off, Filesz uint64
	Flags              elf.ProgFlag
}

type Section struct {
	Name          string
	VA, Off, Size uint64
	Flags         elf.SectionFlag
}

// Contains reports whether va lies inside s.
func (s Section) Contains(va uint64) bool {
	return s.Size != 0 && va >= s.VA && va < s.VA+s.Size
}

type Symbol struct {
	Name string
	Addr uint64
	Size uint64
	Func bool
}

// PLTStub is one lazy-binding stub of .plt and the GOT slot it jumps
// through.
type PLTStub struct {
	Addr    uint64
	GOTAddr uint64
	Index   int
	Name    string // imported symbol, empty when unknown
}

// PLTRel is one R_RISCV_JUMP_SLOT relocation of .rela.plt. PLTAddr is
// zero when no decoded stub loads the patched slot.
type PLTRel struct {
	Offset   uint64
	SymIndex uint32
	SymName  string
	PLTAddr  uint64
}

const (
	pltHeaderSize = 32
	pltStubSize   = 16
	relaSize      = 24
)

func Open(path string) (*Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elf: %w", err)
	}
	if f.Machine != elf.EM_RISCV {
		f.Close()
		return nil, fmt.Errorf("%s: %w (machine %v)", path, ErrNotRISCV, f.Machine)
	}

	of, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open file: %w", err)
	}

	fi, err := of.Stat()
	if err != nil {
		of.Close()
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	all, err := syscall.Mmap(int(of.Fd()), 0, int(fi.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		of.Close()
		f.Close()
		return nil, fmt.Errorf("mmap file: %w", err)
	}

	im := &Image{Path: path, File: f, All: all, Entry: f.Entry, f: of}
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		im.Loads = append(im.Loads, Seg{
			Vaddr:  p.Vaddr,
			Off:    p.Off,
			Filesz: p.Filesz,
			Flags:  p.Flags,
		})
	}

	for _, s := range f.Sections {
		if s.Flags&elf.SHF_ALLOC == 0 || s.Size == 0 {
			continue
		}
		sec := Section{s.Name, s.Addr, s.Offset, s.Size, s.Flags}
		im.Sections = append(im.Sections, sec)
		switch s.Name {
		case ".text":
			im.Text = sec
		case ".rodata":
			im.Rodata = sec
		case ".data":
			im.Data = sec
		case ".sdata":
			im.SData = sec
		case ".plt":
			im.PLT = sec
		}
	}
	sort.Slice(im.Sections, func(i, j int) bool { return im.Sections[i].VA < im.Sections[j].VA })

	im.Dynsyms = loadSymbols(f.DynamicSymbols)
	im.Syms = loadSymbols(f.Symbols)
	if addr, ok := im.FindSymbol(GlobalPointerSymbol); ok {
		im.GP, im.HasGP = addr, true
	}

	im.parsePLTStubs()
	im.parsePLTRelocations()

	// Fallbacks if stripped.
	if im.Text.Size == 0 {
		for _, l := range im.Loads {
			if l.Flags&elf.PF_X != 0 && l.Filesz > 0 {
				im.Text = Section{Name: "LOAD(exec)", VA: l.Vaddr, Off: l.Off, Size: l.Filesz}
				break
			}
		}
	}
	if im.Rodata.Size == 0 {
		for _, l := range im.Loads {
			if (l.Flags&elf.PF_R != 0) && (l.Flags&elf.PF_W == 0) && (l.Flags&elf.PF_X == 0) && l.Filesz > 0 {
				im.Rodata = Section{Name: "LOAD(ro)", VA: l.Vaddr, Off: l.Off, Size: l.Filesz}
				break
			}
		}
	}
	return im, nil
}

func loadSymbols(read func() ([]elf.Symbol, error)) []Symbol {
	syms, err := read()
	if err != nil {
		return nil // table absent or stripped
	}
	var out []Symbol
	for _, s := range syms {
		if s.Value == 0 || s.Name == "" || s.Section == elf.SHN_UNDEF {
			continue
		}
		typ := elf.ST_TYPE(s.Info)
		if typ == elf.STT_SECTION || typ == elf.STT_FILE {
			continue
		}
		out = append(out, Symbol{Name: s.Name, Addr: s.Value, Size: s.Size, Func: typ == elf.STT_FUNC})
	}
	return out
}

// Close unmaps the memory and closes the underlying files.
func (im *Image) Close() error {
	var err1, err2 error
	if im.All != nil {
		err1 = syscall.Munmap(im.All)
		im.All = nil
	}
	if im.f != nil {
		err2 = im.f.Close()
		im.f = nil
	}
	if im.File != nil {
		err3 := im.File.Close()
		if err3 != nil && err2 == nil {
			err2 = err3
		}
		im.File = nil
	}
	if err1 != nil {
		return err1
	}
	return err2
}

// VA2Off translates a virtual address into a file offset
// using PT_LOAD segments. It returns false if VA is unmapped.
func (im *Image) VA2Off(va uint64) (uint64, bool) {
	for _, l := range im.Loads {
		if va >= l.Vaddr && va < l.Vaddr+l.Filesz {
			return l.Off + (va - l.Vaddr), true
		}
	}
	return 0, false
}

// SliceVA returns a subslice of the mapped file corresponding to the virtual address range [va, va+size).
// It returns (nil, false) if the VA is unmapped or the range is out of bounds.
func (im *Image) SliceVA(va uint64, size uint64) ([]byte, bool) {
	off, ok := im.VA2Off(va)
	if !ok {
		return nil, false
	}
	if size == 0 {
		return []byte{}, true
	}
	end := off + size
	if end > uint64(len(im.All)) {
		return nil, false
	}
	return im.All[off:end], true
}

// SectionAt returns the allocated section holding va.
func (im *Image) SectionAt(va uint64) (Section, bool) {
	i := sort.Search(len(im.Sections), func(i int) bool { return im.Sections[i].VA > va })
	if i > 0 && im.Sections[i-1].Contains(va) {
		return im.Sections[i-1], true
	}
	return Section{}, false
}

// InReadOnlyData reports whether va lies in an allocated, non-writable,
// non-executable section.
func (im *Image) InReadOnlyData(va uint64) bool {
	s, ok := im.SectionAt(va)
	if !ok {
		return im.Rodata.Contains(va)
	}
	return s.Flags&(elf.SHF_WRITE|elf.SHF_EXECINSTR) == 0
}

// ReadBytesVA returns up to max bytes starting at va, stopping at the
// end of the mapped segment.
func (im *Image) ReadBytesVA(va uint64, max int) ([]byte, bool) {
	for _, l := range im.Loads {
		if va < l.Vaddr || va >= l.Vaddr+l.Filesz {
			continue
		}
		off := l.Off + (va - l.Vaddr)
		n := min(uint64(max), l.Vaddr+l.Filesz-va)
		if off+n > uint64(len(im.All)) {
			return nil, false
		}
		return im.All[off : off+n], true
	}
	return nil, false
}

// FindSymbol looks a name up in the static then the dynamic symbols.
func (im *Image) FindSymbol(name string) (uint64, bool) {
	for _, tab := range [][]Symbol{im.Syms, im.Dynsyms} {
		for _, s := range tab {
			if s.Name == name {
				return s.Addr, true
			}
		}
	}
	return 0, false
}

// FindFunction returns the address and size of a function symbol.
func (im *Image) FindFunction(name string) (Symbol, bool) {
	for _, tab := range [][]Symbol{im.Syms, im.Dynsyms} {
		for _, s := range tab {
			if s.Name == name && s.Func {
				return s, true
			}
		}
	}
	return Symbol{}, false
}

// parsePLTStubs decodes every stub after the PLT header. A stub is
//
//	auipc t3, %pcrel_hi(slot)
//	ld    t3, %pcrel_lo(slot)(t3)
//	jalr  t1, t3
//	nop
//
// and the GOT slot comes from pairing the auipc with the ld.
func (im *Image) parsePLTStubs() {
	if im.PLT.Size <= pltHeaderSize {
		return
	}
	for i, addr := 0, im.PLT.VA+pltHeaderSize; addr+pltStubSize <= im.PLT.VA+im.PLT.Size; i, addr = i+1, addr+pltStubSize {
		if got, ok := im.stubSlot(addr); ok {
			im.PLTStubs = append(im.PLTStubs, PLTStub{Addr: addr, GOTAddr: got, Index: i})
		}
	}
}

func (im *Image) stubSlot(addr uint64) (uint64, bool) {
	code, ok := im.SliceVA(addr, 8)
	if !ok {
		return 0, false
	}
	return PLTSlot(code, addr)
}

// PLTSlot returns the GOT slot loaded by the auipc/ld pair at the start
// of the stub code located at addr.
func PLTSlot(code []byte, addr uint64) (uint64, bool) {
	hi, err := riscv.DecodeBytes(code)
	if err != nil || hi.Op != riscv.OpAUIPC {
		return 0, false
	}
	lo, err := riscv.DecodeBytes(code[hi.Len:])
	if err != nil || lo.Op != riscv.OpLD {
		return 0, false
	}
	h := disasm.NewHistory(1)
	h.Push(addr, hi)
	got, strategy, ok := disasm.Reconstructor{}.Resolve(lo, addr+uint64(hi.Len), h)
	return got, ok && strategy == disasm.StrategyRegisterPair
}

// parsePLTRelocations names the PLT stubs from .rela.plt: each
// R_RISCV_JUMP_SLOT relocation patches one GOT slot.
func (im *Image) parsePLTRelocations() {
	sec := im.File.Section(".rela.plt")
	if sec == nil {
		return
	}
	data, err := sec.Data()
	if err != nil {
		return
	}
	dynsyms, err := im.File.DynamicSymbols()
	if err != nil {
		return
	}
	bySlot := make(map[uint64]int, len(im.PLTStubs))
	for i, s := range im.PLTStubs {
		bySlot[s.GOTAddr] = i
	}

	for off := 0; off+relaSize <= len(data); off += relaSize {
		rOffset := binary.LittleEndian.Uint64(data[off:])
		rInfo := binary.LittleEndian.Uint64(data[off+8:])
		symIndex := uint32(rInfo >> 32)

		var symName string
		if symIndex > 0 && int(symIndex) <= len(dynsyms) {
			symName = dynsyms[symIndex-1].Name // DynamicSymbols drops the null entry
		}

		rel := PLTRel{Offset: rOffset, SymIndex: symIndex, SymName: symName}
		if i, ok := bySlot[rOffset]; ok {
			rel.PLTAddr = im.PLTStubs[i].Addr
			im.PLTStubs[i].Name = symName
		}
		im.PLTRels = append(im.PLTRels, rel)
	}
}

// IsPLTEntry reports whether va lies inside .plt.
func (im *Image) IsPLTEntry(va uint64) bool {
	return im.PLT.Contains(va)
}

// PLTNames maps each named stub address to "name@plt".
func (im *Image) PLTNames() map[uint64]string {
	m := make(map[uint64]string)
	for _, s := range im.PLTStubs {
		if s.Name != "" {
			m[s.Addr] = s.Name + "@plt"
		}
	}
	return m
}

// FuncSymbols returns the function symbols of both tables, deduplicated
// by address and sorted.
func (im *Image) FuncSymbols() []Symbol {
	seen := make(map[uint64]bool)
	var out []Symbol
	for _, tab := range [][]Symbol{im.Syms, im.Dynsyms} {
		for _, s := range tab {
			if !s.Func || seen[s.Addr] || strings.HasPrefix(s.Name, "$") {
				continue
			}
			seen[s.Addr] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}
