package analysis

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rvdis/internal/disasm"
	"rvdis/internal/riscv"
)

// TraceRecord is one executed instruction of an emulator trace.
type TraceRecord struct {
	PC  uint64
	Raw uint64
}

// ParseTraceLine parses "<pc> <insn>" with both fields in hex, an
// optional 0x prefix and an optional trailing colon on the pc. Further
// fields are ignored. Blank lines and lines starting with '#' report
// ok=false without error.
func ParseTraceLine(line string) (rec TraceRecord, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return TraceRecord{}, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return TraceRecord{}, false, fmt.Errorf("trace line %q: want <pc> <insn>", line)
	}
	pc, err := ParseHex(strings.TrimSuffix(fields[0], ":"))
	if err != nil {
		return TraceRecord{}, false, fmt.Errorf("trace line %q: pc: %w", line, err)
	}
	raw, err := ParseHex(fields[1])
	if err != nil {
		return TraceRecord{}, false, fmt.Errorf("trace line %q: insn: %w", line, err)
	}
	return TraceRecord{PC: pc, Raw: raw}, true, nil
}

// ParseHex parses a hex number with or without a 0x prefix.
func ParseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, 64)
}

// Tracer feeds executed instructions to a session. A record whose pc is
// not the fall-through of the previous one starts a new history, since
// the instructions in between were never seen.
type Tracer struct {
	sess    *disasm.Session
	next    uint64
	started bool
}

func NewTracer(sess *disasm.Session) *Tracer {
	return &Tracer{sess: sess}
}

// Feed disassembles one record.
func (t *Tracer) Feed(rec TraceRecord) error {
	if t.started && rec.PC != t.next {
		t.sess.Reset()
	}
	inst := riscv.Decode(rec.Raw)
	t.next, t.started = rec.PC+uint64(inst.Len), true
	return t.sess.Print(inst, rec.PC)
}

// FeedLine parses and disassembles one trace line.
func (t *Tracer) FeedLine(line string) error {
	rec, ok, err := ParseTraceLine(line)
	if err != nil || !ok {
		return err
	}
	return t.Feed(rec)
}

// Run disassembles every line of r.
func (t *Tracer) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := t.FeedLine(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
