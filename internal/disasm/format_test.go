package disasm

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rvdis/internal/riscv"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		format string
		want   []Operand
	}{
		{"O", []Operand{OperandMnemonic}},
		{"O\t0,i(1)", []Operand{OperandMnemonic, OperandTab, OperandRd, OperandComma, OperandImm, OperandLParen, OperandRs1, OperandRParen}},
		{"OAR\t0,2,(1)", []Operand{OperandMnemonic, OperandAcquire, OperandRelease, OperandTab, OperandRd, OperandComma, OperandRs2, OperandComma, OperandLParen, OperandRs1, OperandRParen}},
		{"O\tz?1", []Operand{OperandMnemonic, OperandTab, OperandIgnored, OperandIgnored, OperandRs1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Compile(tt.format)); diff != "" {
			t.Errorf("Compile(%q) (-want +got):\n%s", tt.format, diff)
		}
	}
}

func TestUnknownOperandRendersNothing(t *testing.T) {
	tables := NewTables()
	tables.Formats[riscv.OpADDI] = Compile("O\t0,z1")
	lines := render(t, Options{Tables: tables}, 0, riscv.Decode(0x00150513))
	if got := lines[0][colArguments:]; got != "a0, a0" {
		t.Errorf("operands = %q, want %q", got, "a0, a0")
	}
}

func TestDefaultTablesCoverEveryOp(t *testing.T) {
	tables := DefaultTables()
	if tables != DefaultTables() {
		t.Error("DefaultTables built twice")
	}
	for op := riscv.Op(0); op < riscv.NumOps; op++ {
		f := tables.Formats[op]
		if len(f) == 0 || f[0] != OperandMnemonic {
			t.Errorf("%v: format does not start with the mnemonic: %v", op, f)
		}
		for _, o := range f {
			if o == OperandIgnored {
				t.Errorf("%v: format %q has an unknown character", op, op.Format())
			}
		}
	}
}

func TestFenceSet(t *testing.T) {
	tests := map[uint8]string{0: "0", 0xf: "iorw", 0x3: "rw", 0x8: "i", 0x5: "ow"}
	for v, want := range tests {
		if got := fenceSet(v); got != want {
			t.Errorf("fenceSet(%#x) = %q, want %q", v, got, want)
		}
	}
}
