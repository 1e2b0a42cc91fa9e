package riscv

import (
	"fmt"

	"rvdis/internal/bitfield"
)

// Arg identifies one operand field of the instruction encodings.
type Arg uint8

const (
	ArgRD Arg = iota
	ArgRS1
	ArgRS2
	ArgRS3
	ArgFRD
	ArgFRS1
	ArgFRS2
	ArgFRS3
	ArgAQ
	ArgRL
	ArgPred
	ArgSucc
	ArgRM
	ArgImm20
	ArgOImm20
	ArgJImm20
	ArgImm12
	ArgOImm12
	ArgCSR12
	ArgSImm12
	ArgSBImm12
	ArgZimm
	ArgShamt5
	ArgShamt6
	ArgCRD0
	ArgCRDQ
	ArgCRS1Q
	ArgCRS1RDQ
	ArgCRS2Q
	ArgCRD
	ArgCRS1
	ArgCRS1RD
	ArgCRS2
	ArgCFRDQ
	ArgCFRS2Q
	ArgCFRS2
	ArgCFRD
	ArgCImmSh5
	ArgCImmSh6
	ArgCImmI
	ArgCNZImmI
	ArgCImmUI
	ArgCImmLWSP
	ArgCImmLDSP
	ArgCImm16SP
	ArgCImmJ
	ArgCImmB
	ArgCImmSWSP
	ArgCImmSDSP
	ArgCImmSQSP
	ArgCImm4SPN
	ArgCImmW
	ArgCImmD
	ArgCImmQ

	NumArgs
)

var (
	seg = bitfield.Seg
	b   = bitfield.B
	bit = bitfield.Bit
	u   = bitfield.Unsigned
	s   = bitfield.Signed
)

// Catalog holds the bit layout of every operand field, as laid out in the
// RISC-V base and compressed instruction formats.
var Catalog = [NumArgs]bitfield.Codec{
	ArgRD:      u(5, seg(11, 7, b(4, 0))),
	ArgRS1:     u(5, seg(19, 15, b(4, 0))),
	ArgRS2:     u(5, seg(24, 20, b(4, 0))),
	ArgRS3:     u(5, seg(31, 27, b(4, 0))),
	ArgFRD:     u(5, seg(11, 7, b(4, 0))),
	ArgFRS1:    u(5, seg(19, 15, b(4, 0))),
	ArgFRS2:    u(5, seg(24, 20, b(4, 0))),
	ArgFRS3:    u(5, seg(31, 27, b(4, 0))),
	ArgAQ:      u(1, seg(26, 26, b(0, 0))),
	ArgRL:      u(1, seg(25, 25, b(0, 0))),
	ArgPred:    u(4, seg(27, 24, b(3, 0))),
	ArgSucc:    u(4, seg(23, 20, b(3, 0))),
	ArgRM:      u(3, seg(14, 12, b(2, 0))),
	ArgImm20:   s(32, seg(31, 12, b(31, 12))),
	ArgOImm20:  s(32, seg(31, 12, b(31, 12))),
	ArgJImm20:  s(21, seg(31, 12, bit(20), b(10, 1), bit(11), b(19, 12))),
	ArgImm12:   s(12, seg(31, 20, b(11, 0))),
	ArgOImm12:  s(12, seg(31, 20, b(11, 0))),
	ArgCSR12:   u(12, seg(31, 20, b(11, 0))),
	ArgSImm12:  s(12, seg(31, 25, b(11, 5)), seg(11, 7, b(4, 0))),
	ArgSBImm12: s(13, seg(31, 25, bit(12), b(10, 5)), seg(11, 7, b(4, 1), bit(11))),
	ArgZimm:    u(5, seg(19, 15, b(4, 0))),
	ArgShamt5:  u(5, seg(24, 20, b(4, 0))),
	ArgShamt6:  u(6, seg(25, 20, b(5, 0))),

	ArgCRD0:    u(1, seg(12, 12, b(0, 0))),
	ArgCRDQ:    u(3, seg(4, 2, b(2, 0))),
	ArgCRS1Q:   u(3, seg(9, 7, b(2, 0))),
	ArgCRS1RDQ: u(3, seg(9, 7, b(2, 0))),
	ArgCRS2Q:   u(3, seg(4, 2, b(2, 0))),
	ArgCRD:     u(5, seg(11, 7, b(4, 0))),
	ArgCRS1:    u(5, seg(11, 7, b(4, 0))),
	ArgCRS1RD:  u(5, seg(11, 7, b(4, 0))),
	ArgCRS2:    u(5, seg(6, 2, b(4, 0))),
	ArgCFRDQ:   u(3, seg(4, 2, b(2, 0))),
	ArgCFRS2Q:  u(3, seg(4, 2, b(2, 0))),
	ArgCFRS2:   u(5, seg(6, 2, b(4, 0))),
	ArgCFRD:    u(5, seg(11, 7, b(4, 0))),

	ArgCImmSh5:  u(5, seg(6, 2, b(4, 0))),
	ArgCImmSh6:  u(6, seg(12, 12, bit(5)), seg(6, 2, b(4, 0))),
	ArgCImmI:    s(6, seg(12, 12, bit(5)), seg(6, 2, b(4, 0))),
	ArgCNZImmI:  s(6, seg(12, 12, bit(5)), seg(6, 2, b(4, 0))),
	ArgCImmUI:   s(18, seg(12, 12, bit(17)), seg(6, 2, b(16, 12))),
	ArgCImmLWSP: u(8, seg(12, 12, bit(5)), seg(6, 2, b(4, 2), b(7, 6))),
	ArgCImmLDSP: u(9, seg(12, 12, bit(5)), seg(6, 2, b(4, 3), b(8, 6))),
	ArgCImm16SP: s(10, seg(12, 12, bit(9)), seg(6, 2, bit(4), bit(6), b(8, 7), bit(5))),
	ArgCImmJ:    s(12, seg(12, 2, bit(11), bit(4), b(9, 8), bit(10), bit(6), bit(7), b(3, 1), bit(5))),
	ArgCImmB:    s(9, seg(12, 10, bit(8), b(4, 3)), seg(6, 2, b(7, 6), b(2, 1), bit(5))),
	ArgCImmSWSP: u(8, seg(12, 7, b(5, 2), b(7, 6))),
	ArgCImmSDSP: u(9, seg(12, 7, b(5, 3), b(8, 6))),
	ArgCImmSQSP: u(10, seg(12, 7, b(5, 4), b(9, 6))),
	ArgCImm4SPN: u(10, seg(12, 5, b(5, 4), b(9, 6), bit(2), bit(3))),
	ArgCImmW:    u(7, seg(12, 10, b(5, 3)), seg(6, 5, bit(2), bit(6))),
	ArgCImmD:    u(8, seg(12, 10, b(5, 3)), seg(6, 5, b(7, 6))),
	ArgCImmQ:    u(9, seg(12, 10, b(5, 4), bit(8)), seg(6, 5, b(7, 6))),
}

var argNames = [NumArgs]string{
	ArgRD:       "rd",
	ArgRS1:      "rs1",
	ArgRS2:      "rs2",
	ArgRS3:      "rs3",
	ArgFRD:      "frd",
	ArgFRS1:     "frs1",
	ArgFRS2:     "frs2",
	ArgFRS3:     "frs3",
	ArgAQ:       "aq",
	ArgRL:       "rl",
	ArgPred:     "pred",
	ArgSucc:     "succ",
	ArgRM:       "rm",
	ArgImm20:    "imm20",
	ArgOImm20:   "oimm20",
	ArgJImm20:   "jimm20",
	ArgImm12:    "imm12",
	ArgOImm12:   "oimm12",
	ArgCSR12:    "csr12",
	ArgSImm12:   "simm12",
	ArgSBImm12:  "sbimm12",
	ArgZimm:     "zimm",
	ArgShamt5:   "shamt5",
	ArgShamt6:   "shamt6",
	ArgCRD0:     "crd0",
	ArgCRDQ:     "crdq",
	ArgCRS1Q:    "crs1q",
	ArgCRS1RDQ:  "crs1rdq",
	ArgCRS2Q:    "crs2q",
	ArgCRD:      "crd",
	ArgCRS1:     "crs1",
	ArgCRS1RD:   "crs1rd",
	ArgCRS2:     "crs2",
	ArgCFRDQ:    "cfrdq",
	ArgCFRS2Q:   "cfrs2q",
	ArgCFRS2:    "cfrs2",
	ArgCFRD:     "cfrd",
	ArgCImmSh5:  "cimmsh5",
	ArgCImmSh6:  "cimmsh6",
	ArgCImmI:    "cimmi",
	ArgCNZImmI:  "cnzimmi",
	ArgCImmUI:   "cimmui",
	ArgCImmLWSP: "cimmlwsp",
	ArgCImmLDSP: "cimmldsp",
	ArgCImm16SP: "cimm16sp",
	ArgCImmJ:    "cimmj",
	ArgCImmB:    "cimmb",
	ArgCImmSWSP: "cimmswsp",
	ArgCImmSDSP: "cimmsdsp",
	ArgCImmSQSP: "cimmsqsp",
	ArgCImm4SPN: "cimm4spn",
	ArgCImmW:    "cimmw",
	ArgCImmD:    "cimmd",
	ArgCImmQ:    "cimmq",
}

func (a Arg) String() string {
	if a < NumArgs {
		return argNames[a]
	}
	return fmt.Sprintf("arg(%d)", uint8(a))
}

// Codec returns the bit layout of a.
func (a Arg) Codec() bitfield.Codec { return Catalog[a] }

// Decode extracts a from an instruction word.
func (a Arg) Decode(raw uint64) uint64 { return Catalog[a].Decode(raw) }

// DecodeInt extracts a as a signed quantity.
func (a Arg) DecodeInt(raw uint64) int64 { return Catalog[a].DecodeInt(raw) }

// Encode returns the instruction bits carrying v in field a.
func (a Arg) Encode(v uint64) uint64 { return Catalog[a].Encode(v) }

// reg decodes a register index field.
func (a Arg) reg(raw uint64) uint8 { return uint8(Catalog[a].Decode(raw)) }

// creg decodes a 3-bit compressed register field into x8-x15.
func (a Arg) creg(raw uint64) uint8 { return uint8(Catalog[a].Decode(raw)) + 8 }
