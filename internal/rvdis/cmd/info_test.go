package cmd

import (
	"strings"
	"testing"

	"rvdis/internal/analysis"
	"rvdis/internal/elfx"
)

func TestInfoMarkdown(t *testing.T) {
	im := &elfx.Image{
		Path:  "/tmp/hello",
		Entry: 0x10400,
		GP:    0x12800,
		HasGP: true,
		SData: elfx.Section{Name: ".sdata", VA: 0x12000, Size: 0x40},
		PLT:   elfx.Section{Name: ".plt", VA: 0x10300, Size: 0x40},
		PLTStubs: []elfx.PLTStub{
			{Addr: 0x10320, GOTAddr: 0x12010, Name: "puts"},
			{Addr: 0x10330, GOTAddr: 0x12018},
		},
		PLTRels: []elfx.PLTRel{
			{Offset: 0x12010, SymName: "puts", PLTAddr: 0x10320},
			{Offset: 0x12028, SymName: "exit"},
		},
	}
	md := infoMarkdown(im, analysis.NewSymbolTable(im))

	for _, want := range []string{
		"# hello",
		"- **Entry**: `0x10400`",
		"- **Small data**: `0x12000`-`0x12040` (gp-0x800)",
		"- **PLT stubs**: 2 at `0x10300`",
		"- **PLT relocations**: 2 (1 bound to stubs)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("info missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "**Class**") {
		t.Error("info reported a class without an ELF header")
	}
}
