package riscv

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned when the bytes run out before the end of an
// instruction.
var ErrShortBuffer = errors.New("riscv: truncated instruction")

// Length returns the size in bytes of the instruction whose low bits are
// raw: 2, 4, 6 or 8, or 0 for the reserved longer encodings.
func Length(raw uint64) int {
	switch {
	case raw&0x3 != 0x3:
		return 2
	case raw&0x1c != 0x1c:
		return 4
	case raw&0x3f == 0x1f:
		return 6
	case raw&0x7f == 0x3f:
		return 8
	}
	return 0
}

// Decode decodes the instruction held in the low bits of raw. Unknown
// words decode to OpIllegal; Decode never fails.
func Decode(raw uint64) Inst {
	n := Length(raw)
	switch n {
	case 2:
		raw &= 0xffff
		inst := decodeCompressed(raw)
		inst.Raw, inst.Len = raw, 2
		return inst
	case 4:
		raw &= 0xffffffff
		inst := decode32(raw)
		inst.Raw, inst.Len = raw, 4
		return inst
	case 6:
		return Inst{Op: OpIllegal, Raw: raw & 0xffffffffffff, Len: 6}
	case 8:
		return Inst{Op: OpIllegal, Raw: raw, Len: 8}
	}
	return Inst{Op: OpIllegal, Raw: raw & 0xffff, Len: 2}
}

// DecodeBytes decodes the little-endian instruction at the start of p.
func DecodeBytes(p []byte) (Inst, error) {
	if len(p) < 2 {
		return Inst{}, ErrShortBuffer
	}
	n := Length(uint64(binary.LittleEndian.Uint16(p)))
	if n == 0 {
		n = 2
	}
	if len(p) < n {
		return Inst{}, ErrShortBuffer
	}
	var raw uint64
	for i := n - 1; i >= 0; i-- {
		raw = raw<<8 | uint64(p[i])
	}
	inst := Decode(raw)
	inst.Len = n
	return inst, nil
}

func decode32(raw uint64) Inst {
	w := uint32(raw)
	op := OpIllegal
	for _, e := range encodings {
		if w&e.mask == e.match {
			op = e.op
			break
		}
	}
	inst := Inst{Op: op}
	switch op.Layout() {
	case LayoutU:
		inst.Rd = ArgRD.reg(raw)
		inst.Imm = ArgImm20.DecodeInt(raw)
	case LayoutUJ:
		inst.Rd = ArgRD.reg(raw)
		inst.Imm = ArgJImm20.DecodeInt(raw)
	case LayoutI:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgRS1.reg(raw)
		inst.Imm = ArgImm12.DecodeInt(raw)
	case LayoutISh5:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgRS1.reg(raw)
		inst.Imm = ArgShamt5.DecodeInt(raw)
	case LayoutISh6:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgRS1.reg(raw)
		inst.Imm = ArgShamt6.DecodeInt(raw)
	case LayoutS:
		inst.Rs1, inst.Rs2 = ArgRS1.reg(raw), ArgRS2.reg(raw)
		inst.Imm = ArgSImm12.DecodeInt(raw)
	case LayoutSB:
		inst.Rs1, inst.Rs2 = ArgRS1.reg(raw), ArgRS2.reg(raw)
		inst.Imm = ArgSBImm12.DecodeInt(raw)
	case LayoutR:
		inst.Rd, inst.Rs1, inst.Rs2 = ArgRD.reg(raw), ArgRS1.reg(raw), ArgRS2.reg(raw)
	case LayoutRM:
		inst.Rd, inst.Rs1, inst.Rs2 = ArgRD.reg(raw), ArgRS1.reg(raw), ArgRS2.reg(raw)
		inst.RM = ArgRM.reg(raw)
	case LayoutR4:
		inst.Rd, inst.Rs1, inst.Rs2 = ArgRD.reg(raw), ArgRS1.reg(raw), ArgRS2.reg(raw)
		inst.Rs3 = ArgRS3.reg(raw)
		inst.RM = ArgRM.reg(raw)
	case LayoutRA:
		inst.Rd, inst.Rs1, inst.Rs2 = ArgRD.reg(raw), ArgRS1.reg(raw), ArgRS2.reg(raw)
		inst.AQ, inst.RL = ArgAQ.Decode(raw) != 0, ArgRL.Decode(raw) != 0
	case LayoutRL:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgRS1.reg(raw)
		inst.AQ, inst.RL = ArgAQ.Decode(raw) != 0, ArgRL.Decode(raw) != 0
	case LayoutFence:
		inst.Pred, inst.Succ = ArgPred.reg(raw), ArgSucc.reg(raw)
	case LayoutCSR:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgRS1.reg(raw)
		inst.Imm = ArgCSR12.DecodeInt(raw)
	case LayoutCSRI:
		inst.Rd, inst.Rs1 = ArgRD.reg(raw), ArgZimm.reg(raw)
		inst.Imm = ArgCSR12.DecodeInt(raw)
	case LayoutSFence:
		inst.Rs1, inst.Rs2 = ArgRS1.reg(raw), ArgRS2.reg(raw)
	}
	return inst
}

func decodeCompressed(raw uint64) Inst {
	funct3 := (raw >> 13) & 0x7
	switch raw & 0x3 {
	case 0:
		return decodeQ0(raw, funct3)
	case 1:
		return decodeQ1(raw, funct3)
	case 2:
		return decodeQ2(raw, funct3)
	}
	return Inst{Op: OpIllegal}
}

func decodeQ0(raw, funct3 uint64) Inst {
	rs1 := ArgCRS1Q.creg(raw)
	switch funct3 {
	case 0:
		imm := ArgCImm4SPN.DecodeInt(raw)
		if imm == 0 {
			return Inst{Op: OpIllegal}
		}
		return Inst{Op: OpCADDI4SPN, Rd: ArgCRDQ.creg(raw), Rs1: RegSP, Imm: imm}
	case 1:
		return Inst{Op: OpCFLD, Rd: ArgCFRDQ.creg(raw), Rs1: rs1, Imm: ArgCImmD.DecodeInt(raw)}
	case 2:
		return Inst{Op: OpCLW, Rd: ArgCRDQ.creg(raw), Rs1: rs1, Imm: ArgCImmW.DecodeInt(raw)}
	case 3:
		return Inst{Op: OpCLD, Rd: ArgCRDQ.creg(raw), Rs1: rs1, Imm: ArgCImmD.DecodeInt(raw)}
	case 5:
		return Inst{Op: OpCFSD, Rs1: rs1, Rs2: ArgCFRS2Q.creg(raw), Imm: ArgCImmD.DecodeInt(raw)}
	case 6:
		return Inst{Op: OpCSW, Rs1: rs1, Rs2: ArgCRS2Q.creg(raw), Imm: ArgCImmW.DecodeInt(raw)}
	case 7:
		return Inst{Op: OpCSD, Rs1: rs1, Rs2: ArgCRS2Q.creg(raw), Imm: ArgCImmD.DecodeInt(raw)}
	}
	return Inst{Op: OpIllegal}
}

func decodeQ1(raw, funct3 uint64) Inst {
	rd := ArgCRS1RD.reg(raw)
	switch funct3 {
	case 0:
		if rd == RegZero {
			return Inst{Op: OpCNOP}
		}
		return Inst{Op: OpCADDI, Rd: rd, Rs1: rd, Imm: ArgCNZImmI.DecodeInt(raw)}
	case 1:
		if rd == RegZero {
			return Inst{Op: OpIllegal}
		}
		return Inst{Op: OpCADDIW, Rd: rd, Rs1: rd, Imm: ArgCImmI.DecodeInt(raw)}
	case 2:
		return Inst{Op: OpCLI, Rd: rd, Imm: ArgCImmI.DecodeInt(raw)}
	case 3:
		if rd == RegSP {
			imm := ArgCImm16SP.DecodeInt(raw)
			if imm == 0 {
				return Inst{Op: OpIllegal}
			}
			return Inst{Op: OpCADDI16SP, Rd: RegSP, Rs1: RegSP, Imm: imm}
		}
		imm := ArgCImmUI.DecodeInt(raw)
		if imm == 0 || rd == RegZero {
			return Inst{Op: OpIllegal}
		}
		return Inst{Op: OpCLUI, Rd: rd, Imm: imm}
	case 4:
		return decodeQ1Arith(raw)
	case 5:
		return Inst{Op: OpCJ, Imm: ArgCImmJ.DecodeInt(raw)}
	case 6:
		return Inst{Op: OpCBEQZ, Rs1: ArgCRS1Q.creg(raw), Imm: ArgCImmB.DecodeInt(raw)}
	case 7:
		return Inst{Op: OpCBNEZ, Rs1: ArgCRS1Q.creg(raw), Imm: ArgCImmB.DecodeInt(raw)}
	}
	return Inst{Op: OpIllegal}
}

func decodeQ1Arith(raw uint64) Inst {
	rd := ArgCRS1RDQ.creg(raw)
	switch (raw >> 10) & 0x3 {
	case 0:
		return Inst{Op: OpCSRLI, Rd: rd, Rs1: rd, Imm: ArgCImmSh6.DecodeInt(raw)}
	case 1:
		return Inst{Op: OpCSRAI, Rd: rd, Rs1: rd, Imm: ArgCImmSh6.DecodeInt(raw)}
	case 2:
		return Inst{Op: OpCANDI, Rd: rd, Rs1: rd, Imm: ArgCImmI.DecodeInt(raw)}
	}
	rs2 := ArgCRS2Q.creg(raw)
	var op Op
	switch (raw>>12)&0x1<<2 | (raw>>5)&0x3 {
	case 0:
		op = OpCSUB
	case 1:
		op = OpCXOR
	case 2:
		op = OpCOR
	case 3:
		op = OpCAND
	case 4:
		op = OpCSUBW
	case 5:
		op = OpCADDW
	default:
		return Inst{Op: OpIllegal}
	}
	return Inst{Op: op, Rd: rd, Rs1: rd, Rs2: rs2}
}

func decodeQ2(raw, funct3 uint64) Inst {
	rd := ArgCRD.reg(raw)
	switch funct3 {
	case 0:
		return Inst{Op: OpCSLLI, Rd: rd, Rs1: rd, Imm: ArgCImmSh6.DecodeInt(raw)}
	case 1:
		return Inst{Op: OpCFLDSP, Rd: ArgCFRD.reg(raw), Rs1: RegSP, Imm: ArgCImmLDSP.DecodeInt(raw)}
	case 2:
		if rd == RegZero {
			return Inst{Op: OpIllegal}
		}
		return Inst{Op: OpCLWSP, Rd: rd, Rs1: RegSP, Imm: ArgCImmLWSP.DecodeInt(raw)}
	case 3:
		if rd == RegZero {
			return Inst{Op: OpIllegal}
		}
		return Inst{Op: OpCLDSP, Rd: rd, Rs1: RegSP, Imm: ArgCImmLDSP.DecodeInt(raw)}
	case 4:
		rs2 := ArgCRS2.reg(raw)
		if raw&(1<<12) == 0 {
			switch {
			case rs2 != RegZero:
				return Inst{Op: OpCMV, Rd: rd, Rs2: rs2}
			case rd != RegZero:
				return Inst{Op: OpCJR, Rs1: rd}
			}
			return Inst{Op: OpIllegal}
		}
		switch {
		case rs2 != RegZero:
			return Inst{Op: OpCADD, Rd: rd, Rs1: rd, Rs2: rs2}
		case rd != RegZero:
			return Inst{Op: OpCJALR, Rs1: rd}
		}
		return Inst{Op: OpCEBREAK}
	case 5:
		return Inst{Op: OpCFSDSP, Rs1: RegSP, Rs2: ArgCFRS2.reg(raw), Imm: ArgCImmSDSP.DecodeInt(raw)}
	case 6:
		return Inst{Op: OpCSWSP, Rs1: RegSP, Rs2: ArgCRS2.reg(raw), Imm: ArgCImmSWSP.DecodeInt(raw)}
	case 7:
		return Inst{Op: OpCSDSP, Rs1: RegSP, Rs2: ArgCRS2.reg(raw), Imm: ArgCImmSDSP.DecodeInt(raw)}
	}
	return Inst{Op: OpIllegal}
}
