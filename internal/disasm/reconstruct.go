package disasm

import "rvdis/internal/riscv"

// Strategy identifies how an address was reconstructed.
type Strategy uint8

const (
	StrategyNone Strategy = iota
	StrategyPCRelative
	StrategyRegisterPair
	StrategyGPRelative
)

func (s Strategy) String() string {
	switch s {
	case StrategyPCRelative:
		return "pc-relative"
	case StrategyRegisterPair:
		return "register-pair"
	case StrategyGPRelative:
		return "gp-relative"
	}
	return "none"
}

// Reconstructor recovers the absolute address an instruction refers to.
// Failure is normal: most instructions do not address memory.
type Reconstructor struct {
	PCOffset uint64
	GP       uint64
	HasGP    bool
}

// Resolve tries pc-relative, register-pair and gp-relative
// reconstruction in that order. h holds the instructions before inst and
// may be nil.
func (r Reconstructor) Resolve(inst riscv.Inst, pc uint64, h *History) (uint64, Strategy, bool) {
	if addr, ok := r.pcRelative(inst, pc); ok {
		return addr, StrategyPCRelative, true
	}
	if addr, ok := r.registerPair(inst, h); ok {
		return addr, StrategyRegisterPair, true
	}
	if addr, ok := r.gpRelative(inst); ok {
		return addr, StrategyGPRelative, true
	}
	return 0, StrategyNone, false
}

func (r Reconstructor) pcRelative(inst riscv.Inst, pc uint64) (uint64, bool) {
	if !inst.Op.IsPCRelative() {
		return 0, false
	}
	return pc - r.PCOffset + uint64(inst.Imm), true
}

// registerPair matches a low-part instruction with the nearest earlier
// instruction that wrote its base register. Only a high-part writer
// counts; any other write means the base no longer holds a known value.
func (r Reconstructor) registerPair(inst riscv.Inst, h *History) (uint64, bool) {
	if h == nil || !inst.Op.IsLowPart() || inst.Rs1 == riscv.RegZero {
		return 0, false
	}
	e, ok := h.LastWriter(inst.Rs1)
	if !ok || !e.Inst.Op.IsHighPart() {
		return 0, false
	}
	high := uint64(e.Inst.Imm)
	if e.Inst.Op.IsPCRelative() {
		high += e.PC - r.PCOffset
	}
	return high + uint64(inst.Imm), true
}

func (r Reconstructor) gpRelative(inst riscv.Inst) (uint64, bool) {
	if !r.HasGP || !inst.Op.IsGPRelative() || inst.Rs1 != riscv.RegGP {
		return 0, false
	}
	return r.GP + uint64(inst.Imm), true
}
