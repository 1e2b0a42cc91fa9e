package riscv

// Encode assembles a 32-bit instruction from its op and operand fields.
// It reports false for compressed and illegal ops and for immediates that
// do not fit their field.
func Encode(inst Inst) (uint64, bool) {
	e, ok := encodingOf[inst.Op]
	if !ok {
		return 0, false
	}
	var w uint64
	put := func(a Arg, v uint64) { w |= a.Encode(v) }
	imm := func(a Arg) bool {
		if !Catalog[a].Fits(inst.Imm) {
			return false
		}
		put(a, uint64(inst.Imm))
		return true
	}
	flag := func(v bool) uint64 {
		if v {
			return 1
		}
		return 0
	}

	switch inst.Op.Layout() {
	case LayoutU:
		put(ArgRD, uint64(inst.Rd))
		ok = imm(ArgImm20)
	case LayoutUJ:
		put(ArgRD, uint64(inst.Rd))
		ok = imm(ArgJImm20)
	case LayoutI:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		ok = imm(ArgImm12)
	case LayoutISh5:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		ok = imm(ArgShamt5)
	case LayoutISh6:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		ok = imm(ArgShamt6)
	case LayoutS:
		put(ArgRS1, uint64(inst.Rs1))
		put(ArgRS2, uint64(inst.Rs2))
		ok = imm(ArgSImm12)
	case LayoutSB:
		put(ArgRS1, uint64(inst.Rs1))
		put(ArgRS2, uint64(inst.Rs2))
		ok = imm(ArgSBImm12)
	case LayoutR4:
		put(ArgRS3, uint64(inst.Rs3))
		fallthrough
	case LayoutRM:
		put(ArgRM, uint64(inst.RM))
		fallthrough
	case LayoutR:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		put(ArgRS2, uint64(inst.Rs2))
	case LayoutRA:
		put(ArgRS2, uint64(inst.Rs2))
		fallthrough
	case LayoutRL:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		put(ArgAQ, flag(inst.AQ))
		put(ArgRL, flag(inst.RL))
	case LayoutFence:
		put(ArgPred, uint64(inst.Pred))
		put(ArgSucc, uint64(inst.Succ))
	case LayoutCSR:
		put(ArgRD, uint64(inst.Rd))
		put(ArgRS1, uint64(inst.Rs1))
		ok = imm(ArgCSR12)
	case LayoutCSRI:
		put(ArgRD, uint64(inst.Rd))
		put(ArgZimm, uint64(inst.Rs1))
		ok = imm(ArgCSR12)
	case LayoutSFence:
		put(ArgRS1, uint64(inst.Rs1))
		put(ArgRS2, uint64(inst.Rs2))
	}
	if !ok {
		return 0, false
	}
	return uint64(e.match) | w&^uint64(e.mask), true
}
