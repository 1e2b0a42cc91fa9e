package riscv

// Register numbers with a fixed ABI role.
const (
	RegZero = 0
	RegRA   = 1
	RegSP   = 2
	RegGP   = 3
)

// Inst is a decoded instruction. Register fields hold architectural
// numbers (compressed 3-bit fields are already mapped onto x8-x15 or
// f8-f15). Fields an op does not use are zero.
type Inst struct {
	Op  Op
	Raw uint64
	Len int // bytes

	Rd, Rs1, Rs2, Rs3 uint8

	// Imm is the sign-extended immediate. Upper immediates (lui, auipc,
	// c.lui) are already shifted into place. For csr ops it holds the CSR
	// number; for csrr*i ops the zimm lives in Rs1.
	Imm int64

	RM         uint8
	AQ, RL     bool
	Pred, Succ uint8
}

// WritesIntRd returns the integer register the instruction writes, if any.
// Writes to x0 are reported as no write.
func (i Inst) WritesIntRd() (uint8, bool) {
	var rd uint8
	switch {
	case i.Op == OpCJALR:
		rd = RegRA
	case i.Op < NumOps && writesRd[i.Op]:
		rd = i.Rd
	default:
		return 0, false
	}
	return rd, rd != RegZero
}

// writesRd marks ops whose format renders rd as an integer register.
var writesRd = func() [NumOps]bool {
	var w [NumOps]bool
	for op := Op(0); op < NumOps; op++ {
		f := ops[op].format
		for j := 0; j < len(f); j++ {
			if f[j] == '0' {
				w[op] = true
				break
			}
		}
	}
	return w
}()
