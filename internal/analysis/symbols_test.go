package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rvdis/internal/elfx"
)

func testTable() *SymbolTable {
	return NewSymbolTableFrom([]Symbol{
		{Addr: 0x2000, Size: 0x10, Name: "helper"},
		{Addr: 0x1000, Size: 0x100, Name: "main"},
		{Addr: 0x3000, Name: "data_start"},
		{Addr: 0x2000, Size: 0x20, Name: "helper_v2"},
	})
}

func TestSymbolTableOrder(t *testing.T) {
	got := testTable().Symbols()
	want := []Symbol{
		{Addr: 0x1000, Size: 0x100, Name: "main"},
		{Addr: 0x2000, Size: 0x20, Name: "helper_v2"},
		{Addr: 0x3000, Name: "data_start"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestSymbolTableLookup(t *testing.T) {
	tab := testTable()
	tests := []struct {
		name    string
		addr    uint64
		nearest bool
		want    string
		wantOK  bool
	}{
		{"exact hit", 0x1000, false, "main", true},
		{"exact miss", 0x1004, false, "", false},
		{"nearest at start", 0x1000, true, "main", true},
		{"nearest inside", 0x1010, true, "main+0x10", true},
		{"past sized symbol", 0x1100, true, "", false},
		{"below first", 0x10, true, "", false},
		{"unsized extends", 0x3abc, true, "data_start+0xabc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tab.Lookup(tt.addr, tt.nearest)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(0x%x, %v) = %q, %v; want %q, %v", tt.addr, tt.nearest, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCachedDemangle(t *testing.T) {
	if got := CachedDemangle("_Z3fooi"); got != "foo(int)" {
		t.Errorf("CachedDemangle(_Z3fooi) = %q", got)
	}
	if got := CachedDemangle("main"); got != "main" {
		t.Errorf("CachedDemangle(main) = %q", got)
	}
	before, hits := DemangleCacheStats()
	CachedDemangle("_Z3fooi")
	after, hits2 := DemangleCacheStats()
	if after != before || hits2 != hits+1 {
		t.Errorf("second lookup: names %d->%d hits %d->%d", before, after, hits, hits2)
	}
}

func TestPLTLookup(t *testing.T) {
	im := &elfx.Image{PLT: elfx.Section{Name: ".plt", VA: 0x500, Size: 0x40}}
	syms := NewSymbolTableFrom([]Symbol{{Addr: 0x520, Size: 16, Name: "puts@plt"}})
	lookup := PLTLookup(im, syms.Lookup)

	tests := []struct {
		addr    uint64
		nearest bool
		want    string
		wantOK  bool
	}{
		{0x500, true, ".plt", true},
		{0x508, true, ".plt+0x8", true},
		{0x524, true, "puts@plt+0x4", true},
		{0x530, true, ".plt+0x30", true},
		{0x508, false, "", false},
		{0x540, true, "", false},
	}
	for _, tt := range tests {
		got, ok := lookup(tt.addr, tt.nearest)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("lookup(0x%x, %v) = %q, %v; want %q, %v", tt.addr, tt.nearest, got, ok, tt.want, tt.wantOK)
		}
	}
}
