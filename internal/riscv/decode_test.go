package riscv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLength(t *testing.T) {
	tests := []struct {
		raw  uint64
		want int
	}{
		{0x0001, 2},
		{0x8082, 2},
		{0x0000, 2},
		{0x00000013, 4},
		{0x0000001b, 4},
		{0x0000001f, 6},
		{0x0000003f, 8},
		{0x0000007f, 0},
	}
	for _, tt := range tests {
		if got := Length(tt.raw); got != tt.want {
			t.Errorf("Length(%#x) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDecode32(t *testing.T) {
	tests := []struct {
		name string
		raw  uint64
		want Inst
	}{
		{"addi", 0x00150513, Inst{Op: OpADDI, Rd: 10, Rs1: 10, Imm: 1}},
		{"lui", 0x000102b7, Inst{Op: OpLUI, Rd: 5, Imm: 0x10000}},
		{"jal zero", 0x0000006f, Inst{Op: OpJAL}},
		{"beq backwards", 0xfeb508e3, Inst{Op: OpBEQ, Rs1: 10, Rs2: 11, Imm: -16}},
		{"csrr", 0x30002573, Inst{Op: OpCSRRS, Rd: 10, Imm: 0x300}},
		{"ld", 0x00813083, Inst{Op: OpLD, Rd: 1, Rs1: 2, Imm: 8}},
		{"sd", 0x00113423, Inst{Op: OpSD, Rs1: 2, Rs2: 1, Imm: 8}},
		{"amoadd.w.aq", 0x04b6252f, Inst{Op: OpAMOADDW, Rd: 10, Rs1: 12, Rs2: 11, AQ: true}},
		{"fadd.d dyn", 0x02c5f553, Inst{Op: OpFADDD, Rd: 10, Rs1: 11, Rs2: 12, RM: 7}},
		{"srai 63", 0x43f55513, Inst{Op: OpSRAI, Rd: 10, Rs1: 10, Imm: 63}},
		{"ecall", 0x00000073, Inst{Op: OpECALL}},
		{"fence rw,rw", 0x0330000f, Inst{Op: OpFENCE, Pred: 3, Succ: 3}},
		{"unknown", 0x0000000b, Inst{Op: OpIllegal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Raw, tt.want.Len = tt.raw, 4
			if diff := cmp.Diff(tt.want, Decode(tt.raw)); diff != "" {
				t.Errorf("Decode(%#x) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestDecodeCompressed(t *testing.T) {
	tests := []struct {
		name string
		raw  uint64
		want Inst
	}{
		{"c.addi", 0x0505, Inst{Op: OpCADDI, Rd: 10, Rs1: 10, Imm: 1}},
		{"c.li", 0x557d, Inst{Op: OpCLI, Rd: 10, Imm: -1}},
		{"c.j", 0xa001, Inst{Op: OpCJ}},
		{"c.jr ra", 0x8082, Inst{Op: OpCJR, Rs1: 1}},
		{"c.ldsp", 0x60a2, Inst{Op: OpCLDSP, Rd: 1, Rs1: 2, Imm: 8}},
		{"c.sdsp", 0xe406, Inst{Op: OpCSDSP, Rs1: 2, Rs2: 1, Imm: 8}},
		{"c.lui", 0x6785, Inst{Op: OpCLUI, Rd: 15, Imm: 0x1000}},
		{"c.addi16sp", 0x717d, Inst{Op: OpCADDI16SP, Rd: 2, Rs1: 2, Imm: -16}},
		{"c.beqz", 0xc101, Inst{Op: OpCBEQZ, Rs1: 10}},
		{"c.sub", 0x8c05, Inst{Op: OpCSUB, Rd: 8, Rs1: 8, Rs2: 9}},
		{"c.mv", 0x852e, Inst{Op: OpCMV, Rd: 10, Rs2: 11}},
		{"c.nop", 0x0001, Inst{Op: OpCNOP}},
		{"c.ebreak", 0x9002, Inst{Op: OpCEBREAK}},
		{"all zero", 0x0000, Inst{Op: OpIllegal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Raw, tt.want.Len = tt.raw, 2
			if diff := cmp.Diff(tt.want, Decode(tt.raw)); diff != "" {
				t.Errorf("Decode(%#x) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	inst, err := DecodeBytes([]byte{0x13, 0x05, 0x15, 0x00, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if inst.Op != OpADDI || inst.Len != 4 {
		t.Errorf("got %v len %d, want addi len 4", inst.Op, inst.Len)
	}
	if _, err := DecodeBytes([]byte{0x13, 0x05}); err != ErrShortBuffer {
		t.Errorf("truncated word: err = %v, want ErrShortBuffer", err)
	}
	inst, err = DecodeBytes([]byte{0x82, 0x80})
	if err != nil || inst.Op != OpCJR {
		t.Errorf("c.jr: got %v, %v", inst.Op, err)
	}
}

func TestEncodeDecodeEveryOp(t *testing.T) {
	patterns := []uint32{0, 0xffffffff, 0xaaaaaaaa, 0x55555555, 0x12345678}
	ignoreRaw := cmpopts.IgnoreFields(Inst{}, "Raw")
	for _, e := range encodings {
		for _, p := range patterns {
			word := uint64(e.match | p&^e.mask)
			inst := Decode(word)
			if inst.Op != e.op {
				t.Errorf("Decode(%#08x) = %v, want %v", word, inst.Op, e.op)
				continue
			}
			enc, ok := Encode(inst)
			if !ok {
				t.Errorf("Encode(%v) failed for %#08x", e.op, word)
				continue
			}
			if diff := cmp.Diff(inst, Decode(enc), ignoreRaw); diff != "" {
				t.Errorf("%v: %#08x -> %#08x (-first +second):\n%s", e.op, word, enc, diff)
			}
		}
		if enc, _ := Encode(Decode(uint64(e.match))); enc != uint64(e.match) {
			t.Errorf("%v: canonical word %#08x re-encoded as %#08x", e.op, e.match, enc)
		}
	}
}

func TestEncodeRejects(t *testing.T) {
	tests := []struct {
		name string
		inst Inst
	}{
		{"imm too wide", Inst{Op: OpADDI, Rd: 1, Imm: 4096}},
		{"odd branch", Inst{Op: OpBEQ, Imm: 3}},
		{"compressed", Inst{Op: OpCADDI, Rd: 10, Imm: 1}},
		{"illegal", Inst{Op: OpIllegal}},
	}
	for _, tt := range tests {
		if _, ok := Encode(tt.inst); ok {
			t.Errorf("%s: Encode succeeded", tt.name)
		}
	}
}

func TestWritesIntRd(t *testing.T) {
	tests := []struct {
		inst Inst
		rd   uint8
		ok   bool
	}{
		{Inst{Op: OpADDI, Rd: 5}, 5, true},
		{Inst{Op: OpSD, Rs1: 2, Rs2: 5}, 0, false},
		{Inst{Op: OpJAL, Rd: 0}, 0, false},
		{Inst{Op: OpCJALR, Rs1: 5}, RegRA, true},
		{Inst{Op: OpFADDD, Rd: 5}, 0, false},
		{Inst{Op: OpFMVXD, Rd: 5}, 5, true},
	}
	for _, tt := range tests {
		rd, ok := tt.inst.WritesIntRd()
		if rd != tt.rd || ok != tt.ok {
			t.Errorf("%v.WritesIntRd() = %d, %v, want %d, %v", tt.inst.Op, rd, ok, tt.rd, tt.ok)
		}
	}
}
