package disasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rvdis/internal/riscv"
)

// Output columns.
const (
	colAddress    = 12
	colBytes      = 24
	colOperands   = 45
	colArguments  = 60
	colAnnotation = 80
)

// Options configures a Session.
type Options struct {
	PCOffset   uint64 // subtracted from pc for display and pc-relative targets
	GP         uint64 // global pointer value, used when HasGP is set
	HasGP      bool
	HistoryLen int // 0 means DefaultHistoryLen

	Symbols SymbolLookup // nil means NoSymbols
	Color   Colorizer    // nil means NoColor
	Tables  *Tables      // nil means DefaultTables()
}

// Session disassembles a sequence of instructions to one writer. It is
// not safe for concurrent use.
type Session struct {
	w      io.Writer
	opts   Options
	tables *Tables
	hist   *History
	rec    Reconstructor
}

// NewSession returns a session writing to w.
func NewSession(w io.Writer, opts Options) *Session {
	if opts.Symbols == nil {
		opts.Symbols = NoSymbols
	}
	if opts.Color == nil {
		opts.Color = NoColor
	}
	if opts.Tables == nil {
		opts.Tables = DefaultTables()
	}
	return &Session{
		w:      w,
		opts:   opts,
		tables: opts.Tables,
		hist:   NewHistory(opts.HistoryLen),
		rec:    Reconstructor{PCOffset: opts.PCOffset, GP: opts.GP, HasGP: opts.HasGP},
	}
}

// History exposes the session's instruction history.
func (s *Session) History() *History { return s.hist }

// Reset forgets all history, as after a discontinuity in the input.
func (s *Session) Reset() { s.hist.Clear() }

// Print writes inst, disassembled at pc, as one listing line. It returns
// the first error from the underlying writer.
func (s *Session) Print(inst riscv.Inst, pc uint64) error {
	_, err := s.emit(s.w, inst, pc)
	return err
}

// Render disassembles inst into a Line instead of the session writer.
// History is updated exactly as by Print.
func (s *Session) Render(inst riscv.Inst, pc uint64) Line {
	var b strings.Builder
	line, _ := s.emit(&b, inst, pc)
	line.Text = b.String()
	return line
}

func (s *Session) emit(w io.Writer, inst riscv.Inst, pc uint64) (Line, error) {
	c := &column{w: w}
	color := s.opts.Color
	addr := pc - s.opts.PCOffset
	line := Line{VA: addr, Inst: inst}

	if name, ok := s.opts.Symbols(addr, false); ok {
		c.raw("\n")
		c.raw(color(CategoryAddress))
		c.textf("0x%016x: ", addr)
		c.raw(color(CategoryReset))
		c.raw(color(CategoryLabel))
		c.text(name)
		c.raw(color(CategoryReset))
		c.newline()
	}

	c.padTo(colAddress)
	c.raw(color(CategoryAddress))
	c.textf("%8x:", addr&0xffffffff)
	c.raw(color(CategoryReset))
	c.padTo(colBytes)
	c.text(rawHex(inst))
	c.padTo(colOperands)
	s.operands(c, inst, pc)

	if target, strategy, ok := s.rec.Resolve(inst, pc, s.hist); ok {
		line.Target, line.Strategy, line.HasTarget = target, strategy, true
		c.padTo(colAnnotation)
		c.raw(color(CategoryAddress))
		c.textf("# 0x%016x", target)
		c.raw(color(CategoryReset))
		if name, ok := s.opts.Symbols(target, true); ok {
			c.text(" ")
			c.raw(color(CategoryLabel))
			c.text(name)
			c.raw(color(CategoryReset))
		}
	}
	c.newline()

	if inst.Op.IsUnconditionalJump() {
		s.hist.Clear()
	} else {
		s.hist.Push(pc, inst)
	}
	return line, c.err
}

// operands renders the compiled format of inst.
func (s *Session) operands(c *column, inst riscv.Inst, pc uint64) {
	t := s.tables
	color := s.opts.Color
	styled := false
	var ops []Operand
	if inst.Op < riscv.NumOps {
		ops = t.Formats[inst.Op]
	}
	for _, op := range ops {
		switch op {
		case OperandLParen:
			c.text("(")
		case OperandRParen:
			c.text(")")
		case OperandComma:
			c.text(", ")
		case OperandRd:
			c.text(t.IntRegs[inst.Rd&31])
		case OperandRs1:
			c.text(t.IntRegs[inst.Rs1&31])
		case OperandRs2:
			c.text(t.IntRegs[inst.Rs2&31])
		case OperandFRd:
			c.text(t.FloatRegs[inst.Rd&31])
		case OperandFRs1:
			c.text(t.FloatRegs[inst.Rs1&31])
		case OperandFRs2:
			c.text(t.FloatRegs[inst.Rs2&31])
		case OperandFRs3:
			c.text(t.FloatRegs[inst.Rs3&31])
		case OperandRs1Num:
			c.text(strconv.Itoa(int(inst.Rs1)))
		case OperandImm:
			c.text(strconv.FormatInt(inst.Imm, 10))
		case OperandPCOffset:
			if inst.Imm < 0 {
				c.textf("pc - %d", -inst.Imm)
			} else {
				c.textf("pc + %d", inst.Imm)
			}
		case OperandCSR:
			if name, ok := t.csrName(inst.Imm); ok {
				c.text(name)
			} else {
				c.textf("0x%03x", inst.Imm&0xfff)
			}
		case OperandRoundingMode:
			c.text(riscv.RoundingModeName(inst.RM))
		case OperandMnemonic:
			c.raw(color(CategoryOpcode))
			styled = true
			c.text(t.Mnemonics[inst.Op])
		case OperandAcquire:
			if inst.AQ {
				c.text(".aq")
			}
		case OperandRelease:
			if inst.RL {
				c.text(".rl")
			}
		case OperandTab:
			c.padTo(colArguments)
			c.raw(color(CategoryReset))
			styled = false
		case OperandPred:
			c.text(fenceSet(inst.Pred))
		case OperandSucc:
			c.text(fenceSet(inst.Succ))
		}
	}
	if styled {
		c.raw(color(CategoryReset))
	}
}

func rawHex(inst riscv.Inst) string {
	n := inst.Len
	if n == 0 {
		n = riscv.Length(inst.Raw)
	}
	switch n {
	case 2:
		return fmt.Sprintf("%04x", inst.Raw&0xffff)
	case 4:
		return fmt.Sprintf("%08x", inst.Raw&0xffffffff)
	case 6:
		return fmt.Sprintf("%012x", inst.Raw&0xffffffffffff)
	case 8:
		return fmt.Sprintf("%016x", inst.Raw)
	}
	return ""
}

// column writes text while tracking the visible column. Style tokens go
// through raw and do not move the column. The first write error sticks.
type column struct {
	w   io.Writer
	n   int
	err error
}

func (c *column) raw(s string) {
	if c.err != nil || s == "" {
		return
	}
	_, c.err = io.WriteString(c.w, s)
}

func (c *column) text(s string) {
	c.raw(s)
	c.n += len(s)
}

func (c *column) textf(format string, args ...any) {
	c.text(fmt.Sprintf(format, args...))
}

// padTo emits spaces up to col. Content already past col is left alone.
func (c *column) padTo(col int) {
	if c.n < col {
		c.text(strings.Repeat(" ", col-c.n))
	}
}

func (c *column) newline() {
	c.raw("\n")
	c.n = 0
}
