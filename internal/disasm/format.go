package disasm

import (
	"strings"
	"sync"

	"rvdis/internal/riscv"
)

// Operand is one compiled element of an operand format string.
type Operand uint8

const (
	OperandIgnored      Operand = iota // unrecognized format character
	OperandLParen                      // (
	OperandRParen                      // )
	OperandComma                       // ,
	OperandRd                          // 0
	OperandRs1                         // 1
	OperandRs2                         // 2
	OperandFRd                         // 3
	OperandFRs1                        // 4
	OperandFRs2                        // 5
	OperandFRs3                        // 6
	OperandRs1Num                      // 7
	OperandImm                         // i
	OperandPCOffset                    // o
	OperandCSR                         // c
	OperandRoundingMode                // r
	OperandMnemonic                    // O
	OperandAcquire                     // A
	OperandRelease                     // R
	OperandTab                         // \t
	OperandPred                        // p
	OperandSucc                        // s
)

var operandChars = map[byte]Operand{
	'(':  OperandLParen,
	')':  OperandRParen,
	',':  OperandComma,
	'0':  OperandRd,
	'1':  OperandRs1,
	'2':  OperandRs2,
	'3':  OperandFRd,
	'4':  OperandFRs1,
	'5':  OperandFRs2,
	'6':  OperandFRs3,
	'7':  OperandRs1Num,
	'i':  OperandImm,
	'o':  OperandPCOffset,
	'c':  OperandCSR,
	'r':  OperandRoundingMode,
	'O':  OperandMnemonic,
	'A':  OperandAcquire,
	'R':  OperandRelease,
	'\t': OperandTab,
	'p':  OperandPred,
	's':  OperandSucc,
}

// Compile turns a format string into operands. Characters without a
// rendering rule become OperandIgnored and print nothing, so newer
// format tables still render with an older engine.
func Compile(format string) []Operand {
	out := make([]Operand, 0, len(format))
	for i := 0; i < len(format); i++ {
		out = append(out, operandChars[format[i]])
	}
	return out
}

// Tables holds the read-only data a Session renders with. One Tables
// value is shared by every session.
type Tables struct {
	Formats   [riscv.NumOps][]Operand
	Mnemonics [riscv.NumOps]string
	IntRegs   [32]string
	FloatRegs [32]string
	CSRs      map[uint16]string
}

// NewTables compiles the format strings of every op.
func NewTables() *Tables {
	t := &Tables{
		IntRegs:   riscv.IntRegNames,
		FloatRegs: riscv.FloatRegNames,
		CSRs:      riscv.CSRNames,
	}
	for op := riscv.Op(0); op < riscv.NumOps; op++ {
		t.Formats[op] = Compile(op.Format())
		t.Mnemonics[op] = op.String()
	}
	return t
}

// DefaultTables returns the process-wide tables, built on first use.
var DefaultTables = sync.OnceValue(NewTables)

func (t *Tables) csrName(imm int64) (string, bool) {
	n, ok := t.CSRs[uint16(imm)&0xfff]
	return n, ok
}

// fenceSet renders a fence predecessor or successor set as iorw letters.
func fenceSet(v uint8) string {
	if v&0xf == 0 {
		return "0"
	}
	var b strings.Builder
	for i, c := range "iorw" {
		if v&(8>>i) != 0 {
			b.WriteRune(c)
		}
	}
	return b.String()
}
