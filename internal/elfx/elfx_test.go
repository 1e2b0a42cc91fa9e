package elfx

import (
	"debug/elf"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func le32(words ...uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

func TestPLTSlot(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		addr   uint64
		want   uint64
		wantOK bool
	}{
		{
			name:   "auipc t3 + ld t3",
			code:   le32(0x00002e17, 0x010e3e03), // auipc t3, 0x2; ld t3, 16(t3)
			addr:   0x1000,
			want:   0x3010,
			wantOK: true,
		},
		{
			name:   "negative low part",
			code:   le32(0x00002e17, 0xff0e3e03), // ld t3, -16(t3)
			addr:   0x1000,
			want:   0x2ff0,
			wantOK: true,
		},
		{
			name: "ld through another register",
			code: le32(0x00002e17, 0x0102be03), // ld t3, 16(t0)
			addr: 0x1000,
		},
		{
			name: "not a stub",
			code: le32(0x00150513, 0x010e3e03),
			addr: 0x1000,
		},
		{
			name: "truncated",
			code: le32(0x00002e17)[:4],
			addr: 0x1000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PLTSlot(tt.code, tt.addr)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("PLTSlot = 0x%x, %v; want 0x%x, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func testImage() *Image {
	all := make([]byte, 0x40)
	copy(all[0x20:], "hello\x00")
	return &Image{
		All: all,
		Loads: []Seg{
			{Vaddr: 0x10000, Off: 0x0, Filesz: 0x20, Flags: elf.PF_R | elf.PF_X},
			{Vaddr: 0x20000, Off: 0x20, Filesz: 0x20, Flags: elf.PF_R},
		},
		Sections: []Section{
			{Name: ".text", VA: 0x10000, Off: 0, Size: 0x20, Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR},
			{Name: ".rodata", VA: 0x20000, Off: 0x20, Size: 0x10, Flags: elf.SHF_ALLOC},
			{Name: ".sdata", VA: 0x20010, Off: 0x30, Size: 0x10, Flags: elf.SHF_ALLOC | elf.SHF_WRITE},
		},
	}
}

func TestAddressMapping(t *testing.T) {
	im := testImage()

	if off, ok := im.VA2Off(0x20004); !ok || off != 0x24 {
		t.Errorf("VA2Off(0x20004) = 0x%x, %v", off, ok)
	}
	if _, ok := im.VA2Off(0x30000); ok {
		t.Error("VA2Off mapped an address outside every segment")
	}
	if b, ok := im.SliceVA(0x20000, 6); !ok || string(b) != "hello\x00" {
		t.Errorf("SliceVA = %q, %v", b, ok)
	}
	if _, ok := im.SliceVA(0x20000, 0x100); ok {
		t.Error("SliceVA ran past the mapping")
	}
	if b, ok := im.ReadBytesVA(0x2001c, 64); !ok || len(b) != 4 {
		t.Errorf("ReadBytesVA clipped to %d bytes, %v; want 4", len(b), ok)
	}
}

func TestSectionAt(t *testing.T) {
	im := testImage()
	tests := []struct {
		va       uint64
		name     string
		readOnly bool
	}{
		{0x10010, ".text", false},
		{0x20008, ".rodata", true},
		{0x20018, ".sdata", false},
		{0x20020, "", false},
	}
	for _, tt := range tests {
		s, ok := im.SectionAt(tt.va)
		if ok != (tt.name != "") || s.Name != tt.name {
			t.Errorf("SectionAt(0x%x) = %q, %v; want %q", tt.va, s.Name, ok, tt.name)
		}
		if got := im.InReadOnlyData(tt.va); got != tt.readOnly {
			t.Errorf("InReadOnlyData(0x%x) = %v, want %v", tt.va, got, tt.readOnly)
		}
	}
}

func TestPLTNames(t *testing.T) {
	im := &Image{PLTStubs: []PLTStub{
		{Addr: 0x500, GOTAddr: 0x3000, Name: "puts"},
		{Addr: 0x510, GOTAddr: 0x3008},
	}}
	names := im.PLTNames()
	if len(names) != 1 || names[0x500] != "puts@plt" {
		t.Errorf("PLTNames = %v", names)
	}
}

func TestOpenRejectsOtherMachines(t *testing.T) {
	if runtime.GOARCH == "riscv64" {
		t.Skip("test binary is RISC-V")
	}
	exe, err := os.Executable()
	if err != nil {
		t.Skip(err)
	}
	if runtime.GOOS != "linux" {
		t.Skip("test binary is not ELF")
	}
	_, err = Open(exe)
	if !errors.Is(err, ErrNotRISCV) {
		t.Errorf("Open(%s) error = %v, want ErrNotRISCV", filepath.Base(exe), err)
	}
}

func TestOpenRejectsNonELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notelf")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open accepted a shell script")
	}
}
