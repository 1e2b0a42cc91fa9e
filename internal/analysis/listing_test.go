package analysis

import (
	"debug/elf"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
	"rvdis/internal/riscv"
)

// codeImage maps code at 0x10000 as .text.
func codeImage(words ...uint32) *elfx.Image {
	all := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(all[4*i:], w)
	}
	text := elfx.Section{Name: ".text", VA: 0x10000, Size: uint64(len(all)), Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR}
	return &elfx.Image{
		All:      all,
		Loads:    []elfx.Seg{{Vaddr: 0x10000, Filesz: uint64(len(all)), Flags: elf.PF_R | elf.PF_X}},
		Sections: []elfx.Section{text},
		Text:     text,
	}
}

func TestListing(t *testing.T) {
	im := codeImage(
		0x000102b7, // lui t0, 0x10
		0x00428293, // addi t0, t0, 4
		0x0080006f, // j +8
		0x00000505, // c.addi a0, 1; c.unimp
	)
	sess := disasm.NewSession(io.Discard, disasm.Options{})
	stream, err := Listing(im, TextRegion(im), sess)
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}

	type row struct {
		VA     uint64
		Op     riscv.Op
		Target uint64
	}
	var got []row
	for _, l := range stream {
		got = append(got, row{l.VA, l.Inst.Op, l.Target})
	}
	want := []row{
		{0x10000, riscv.OpLUI, 0},
		{0x10004, riscv.OpADDI, 0x10004},
		{0x10008, riscv.OpJAL, 0x10010},
		{0x1000c, riscv.OpCADDI, 0},
		{0x1000e, riscv.OpIllegal, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
	if sess.History().Len() != 2 {
		t.Errorf("history after jump = %d entries, want 2", sess.History().Len())
	}
}

func TestWalkCount(t *testing.T) {
	im := codeImage(0x00150513, 0x00150513, 0x00150513)
	n := 0
	err := Walk(im, Region{Start: 0x10000, Size: 12, Count: 2}, func(uint64, riscv.Inst) error {
		n++
		return nil
	})
	if err != nil || n != 2 {
		t.Errorf("Walk visited %d, err %v; want 2", n, err)
	}
}

func TestAddressRegion(t *testing.T) {
	im := codeImage(0x00150513, 0x00150513)
	r, err := AddressRegion(im, 0x10004, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Size != 4 || r.Count != DefaultListingCount {
		t.Errorf("AddressRegion = %+v", r)
	}
	if _, err := AddressRegion(im, 0x90000, 1); !errors.Is(err, ErrNoCode) {
		t.Errorf("unmapped start: err = %v, want ErrNoCode", err)
	}
}
