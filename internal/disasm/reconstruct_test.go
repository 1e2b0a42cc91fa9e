package disasm

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rvdis/internal/riscv"
)

var (
	luiT0   = riscv.Inst{Op: riscv.OpLUI, Rd: 5, Imm: 0x10000, Len: 4}
	addiT0  = riscv.Inst{Op: riscv.OpADDI, Rd: 5, Rs1: 5, Imm: 0x20, Len: 4}
	addT0   = riscv.Inst{Op: riscv.OpADD, Rd: 5, Rs1: 5, Rs2: 6, Len: 4}
	lwT0    = riscv.Inst{Op: riscv.OpLW, Rd: 10, Rs1: 5, Imm: 8, Len: 4}
	jalZero = riscv.Inst{Op: riscv.OpJAL, Imm: 64, Len: 4}
)

func TestResolve(t *testing.T) {
	type step struct {
		inst riscv.Inst
		pc   uint64
	}
	tests := []struct {
		name     string
		rec      Reconstructor
		history  []step
		inst     riscv.Inst
		pc       uint64
		want     uint64
		strategy Strategy
	}{
		{
			name:     "branch backwards",
			inst:     riscv.Inst{Op: riscv.OpBEQ, Rs1: 10, Rs2: 11, Imm: -16, Len: 4},
			pc:       0x1000,
			want:     0xff0,
			strategy: StrategyPCRelative,
		},
		{
			name:     "compressed branch with pc offset",
			rec:      Reconstructor{PCOffset: 0x80000000},
			inst:     riscv.Inst{Op: riscv.OpCBNEZ, Rs1: 8, Imm: 12, Len: 2},
			pc:       0x80001000,
			want:     0x100c,
			strategy: StrategyPCRelative,
		},
		{
			name:     "lui then addi",
			history:  []step{{luiT0, 0x1000}},
			inst:     addiT0,
			pc:       0x1004,
			want:     0x10020,
			strategy: StrategyRegisterPair,
		},
		{
			name:     "lui then unrelated then load",
			history:  []step{{luiT0, 0x1000}, {riscv.Inst{Op: riscv.OpADDI, Rd: 10, Rs1: 10, Imm: 1}, 0x1004}},
			inst:     lwT0,
			pc:       0x1008,
			want:     0x10008,
			strategy: StrategyRegisterPair,
		},
		{
			name:     "auipc then ld",
			rec:      Reconstructor{PCOffset: 0x100},
			history:  []step{{riscv.Inst{Op: riscv.OpAUIPC, Rd: 10, Imm: 0x1000, Len: 4}, 0x1100}},
			inst:     riscv.Inst{Op: riscv.OpLD, Rd: 10, Rs1: 10, Imm: 16, Len: 4},
			pc:       0x1104,
			want:     0x2010,
			strategy: StrategyRegisterPair,
		},
		{
			name:     "c.lui then c.addi",
			history:  []step{{riscv.Inst{Op: riscv.OpCLUI, Rd: 15, Imm: 0x1000, Len: 2}, 0x1000}},
			inst:     riscv.Inst{Op: riscv.OpCADDI, Rd: 15, Rs1: 15, Imm: -4, Len: 2},
			pc:       0x1002,
			want:     0xffc,
			strategy: StrategyRegisterPair,
		},
		{
			name:     "gp relative",
			rec:      Reconstructor{GP: 0x12800, HasGP: true},
			inst:     riscv.Inst{Op: riscv.OpLW, Rd: 10, Rs1: riscv.RegGP, Imm: -8, Len: 4},
			want:     0x127f8,
			strategy: StrategyGPRelative,
		},
		{
			name:     "gp relative store",
			rec:      Reconstructor{GP: 0x12800, HasGP: true},
			inst:     riscv.Inst{Op: riscv.OpSD, Rs1: riscv.RegGP, Rs2: 10, Imm: 0x10, Len: 4},
			want:     0x12810,
			strategy: StrategyGPRelative,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(0)
			for _, s := range tt.history {
				h.Push(s.pc, s.inst)
			}
			got, strategy, ok := tt.rec.Resolve(tt.inst, tt.pc, h)
			if !ok {
				t.Fatal("no address reconstructed")
			}
			if got != tt.want || strategy != tt.strategy {
				t.Errorf("got %#x via %v, want %#x via %v", got, strategy, tt.want, tt.strategy)
			}
		})
	}
}

func TestResolveDeclines(t *testing.T) {
	tests := []struct {
		name    string
		rec     Reconstructor
		history []riscv.Inst
		inst    riscv.Inst
	}{
		{"no history", Reconstructor{}, nil, addiT0},
		{"base clobbered after lui", Reconstructor{}, []riscv.Inst{luiT0, addT0}, lwT0},
		{"different register", Reconstructor{}, []riscv.Inst{luiT0}, riscv.Inst{Op: riscv.OpADDI, Rd: 6, Rs1: 6, Imm: 1}},
		{"base is zero", Reconstructor{}, []riscv.Inst{luiT0}, riscv.Inst{Op: riscv.OpADDI, Rd: 5, Imm: 1}},
		{"not a low part", Reconstructor{}, []riscv.Inst{luiT0}, riscv.Inst{Op: riscv.OpXORI, Rd: 5, Rs1: 5, Imm: 1}},
		{"gp without gp", Reconstructor{}, nil, riscv.Inst{Op: riscv.OpLW, Rd: 10, Rs1: riscv.RegGP, Imm: 8}},
		{"gp not a memory op", Reconstructor{GP: 0x1000, HasGP: true}, nil, riscv.Inst{Op: riscv.OpXORI, Rd: 10, Rs1: riscv.RegGP, Imm: 8}},
		{"arithmetic", Reconstructor{}, nil, addT0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(0)
			for i, inst := range tt.history {
				h.Push(uint64(i*4), inst)
			}
			if addr, s, ok := tt.rec.Resolve(tt.inst, 0x1000, h); ok {
				t.Errorf("reconstructed %#x via %v, want none", addr, s)
			}
		})
	}
}

func TestSessionHistory(t *testing.T) {
	s := NewSession(nil, Options{HistoryLen: 4})
	for i := 0; i < 5; i++ {
		s.Render(riscv.Inst{Op: riscv.OpADDI, Rd: uint8(10 + i), Rs1: 10, Imm: int64(i), Len: 4}, uint64(i*4))
	}
	var gotRd []uint8
	for _, e := range s.History().Entries() {
		gotRd = append(gotRd, e.Inst.Rd)
	}
	if diff := cmp.Diff([]uint8{11, 12, 13, 14}, gotRd); diff != "" {
		t.Errorf("history after capacity+1 pushes (-want +got):\n%s", diff)
	}

	s.Render(jalZero, 0x20)
	if n := s.History().Len(); n != 0 {
		t.Fatalf("history holds %d entries after jal, want 0", n)
	}
}

func TestJumpBreaksRegisterPair(t *testing.T) {
	s := NewSession(nil, Options{})
	s.Render(luiT0, 0x1000)
	s.Render(jalZero, 0x1004)
	if line := s.Render(addiT0, 0x1044); line.HasTarget {
		t.Errorf("pair matched across a jump: %#x", line.Target)
	}
}

func TestInstructionDoesNotPairWithItself(t *testing.T) {
	s := NewSession(nil, Options{})
	// addi t0, t0, 32 writes t0 but is not a high part, so a second one
	// finds it as the nearest writer and declines
	first := s.Render(addiT0, 0x1000)
	second := s.Render(addiT0, 0x1004)
	if first.HasTarget || second.HasTarget {
		t.Errorf("unexpected targets: %v %v", first.HasTarget, second.HasTarget)
	}
}

func TestHistoryRing(t *testing.T) {
	h := NewHistory(3)
	if h.Cap() != 3 {
		t.Fatalf("Cap = %d", h.Cap())
	}
	for i := uint64(0); i < 7; i++ {
		h.Push(i, riscv.Inst{})
	}
	var pcs []uint64
	for _, e := range h.Entries() {
		pcs = append(pcs, e.PC)
	}
	if diff := cmp.Diff([]uint64{4, 5, 6}, pcs); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	h.Clear()
	h.Push(9, riscv.Inst{})
	if diff := cmp.Diff([]Entry{{PC: 9}}, h.Entries()); diff != "" {
		t.Errorf("after clear (-want +got):\n%s", diff)
	}
}
