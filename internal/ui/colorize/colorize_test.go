package colorize

import (
	"strings"
	"testing"

	"rvdis/internal/disasm"
)

func TestNewPalette(t *testing.T) {
	p := NewPalette(DefaultStyle)
	if p[disasm.CategoryReset] != "\033[0m" {
		t.Errorf("reset = %q", p[disasm.CategoryReset])
	}
	if got := p[disasm.CategoryLabel]; got != "\033[38;2;255;215;0m" {
		t.Errorf("label = %q", got)
	}
	if got := p[disasm.CategoryOpcode]; !strings.HasPrefix(got, "\033[1m") {
		t.Errorf("opcode should be bold: %q", got)
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	p := NewPalette("no-such-style")
	want := NewPalette(DefaultStyle)
	for _, c := range []disasm.Category{disasm.CategoryAddress, disasm.CategoryOpcode, disasm.CategoryLabel} {
		if p[c] != want[c] {
			t.Errorf("%v = %q, want %q", c, p[c], want[c])
		}
	}
}

func TestEnabledHonoursEnvironment(t *testing.T) {
	t.Setenv("RVDIS_NO_COLOR", "1")
	if Enabled(false, nil) {
		t.Error("colour enabled despite RVDIS_NO_COLOR")
	}
	if c := For(DefaultStyle, false, nil); c(disasm.CategoryOpcode) != "" {
		t.Error("For returned a styling colorizer")
	}
}

func TestPaletteHoldsOnlyPrefixes(t *testing.T) {
	for _, name := range []string{DefaultStyle, "rvdis-light", "monokai"} {
		p := NewPalette(name)
		for _, c := range []disasm.Category{disasm.CategoryAddress, disasm.CategoryOpcode, disasm.CategoryLabel} {
			if got := p[c]; strings.Contains(got, "\033[0m") || strings.Contains(got, "\x00") {
				t.Errorf("%s: %v = %q, want a bare escape prefix", name, c, got)
			}
		}
	}
}
