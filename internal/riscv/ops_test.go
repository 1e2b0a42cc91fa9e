package riscv

import "testing"

func TestBaseCoversCompressedOps(t *testing.T) {
	for op := Op(1); op < NumOps; op++ {
		base := op.Base()
		if !op.IsCompressed() {
			if base != op {
				t.Errorf("%v.Base() = %v, want itself", op, base)
			}
			continue
		}
		if base == op || base.IsCompressed() {
			t.Errorf("%v.Base() = %v, want a 32-bit op", op, base)
		}
	}
}

func TestBase(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCADDI, "addi"},
		{OpCLI, "addi"},
		{OpCMV, "add"},
		{OpCJ, "jal"},
		{OpCJR, "jalr"},
		{OpCBNEZ, "bne"},
		{OpCLDSP, "ld"},
		{OpADDI, "addi"},
	}
	for _, tt := range tests {
		if got := tt.op.Base().String(); got != tt.want {
			t.Errorf("%v.Base() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
