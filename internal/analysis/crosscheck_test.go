package analysis

import (
	"testing"

	"rvdis/internal/riscv"
)

func TestNormalizeMnemonic(t *testing.T) {
	tests := map[string]string{
		"ADDI":         "addi",
		"C_ADDI":       "c.addi",
		"FADD_D":       "fadd.d",
		"AMOADD_W_AQ":  "amoadd.w",
		"LR_D_AQRL":    "lr.d",
		"amoswap.w.rl": "amoswap.w",
	}
	for in, want := range tests {
		if got := normalizeMnemonic(in); got != want {
			t.Errorf("normalizeMnemonic(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAgreeAddi(t *testing.T) {
	code := []byte{0x13, 0x05, 0x15, 0x00} // addi a0, a0, 1
	inst, err := riscv.DecodeBytes(code)
	if err != nil {
		t.Fatal(err)
	}
	ours, theirs, ok := Agree(inst, code)
	if !ok {
		t.Errorf("Agree = %q vs %q, want agreement", ours, theirs)
	}
}

func TestAgreeCompressed(t *testing.T) {
	tests := []struct {
		code []byte
		ours string
	}{
		{[]byte{0x05, 0x05}, "c.addi"}, // c.addi a0, 1
		{[]byte{0x82, 0x80}, "c.jr"},   // ret
		{[]byte{0x08, 0x41}, "c.lw"},   // c.lw a0, 0(a0)
		{[]byte{0x2e, 0x85}, "c.mv"},   // c.mv a0, a1
		{[]byte{0x01, 0xa0}, "c.j"},    // c.j 0
		{[]byte{0x01, 0x00}, "c.nop"},  // c.nop
	}
	for _, tt := range tests {
		inst, err := riscv.DecodeBytes(tt.code)
		if err != nil {
			t.Fatal(err)
		}
		ours, theirs, ok := Agree(inst, tt.code)
		if ours != tt.ours {
			t.Errorf("% x: ours = %q, want %q", tt.code, ours, tt.ours)
		}
		if !ok {
			t.Errorf("% x: Agree = %q vs %q, want agreement", tt.code, ours, theirs)
		}
	}
}

func TestAgreeRejectsDifferentBase(t *testing.T) {
	code := []byte{0x05, 0x05} // c.addi a0, 1
	inst, err := riscv.DecodeBytes(code)
	if err != nil {
		t.Fatal(err)
	}
	inst.Op = riscv.OpCLI
	if _, _, ok := Agree(inst, []byte{0x82, 0x80}); ok {
		t.Error("c.li agreed with a jalr word")
	}
}
