package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/arch/riscv64/riscv64asm"

	"rvdis/internal/elfx"
	"rvdis/internal/riscv"
)

// Mismatch is an instruction the two decoders disagree on.
type Mismatch struct {
	PC     uint64
	Raw    uint64
	Ours   string
	Theirs string // empty when x/arch rejects the word
}

func (m Mismatch) String() string {
	theirs := m.Theirs
	if theirs == "" {
		theirs = "<invalid>"
	}
	return fmt.Sprintf("0x%x: %0*x ours=%s x/arch=%s", m.PC, hexDigits(m.Raw), m.Raw, m.Ours, theirs)
}

func hexDigits(raw uint64) int {
	if raw>>16 == 0 {
		return 4
	}
	return 8
}

// CrossCheckReport summarizes a cross-check run.
type CrossCheckReport struct {
	Checked    int
	Agreed     int
	Mismatches []Mismatch
}

// MnemonicOf returns the x/arch mnemonic of the instruction at the start
// of code, lower-cased with ordering suffixes removed, or "" when x/arch
// does not decode it.
func MnemonicOf(code []byte) string {
	inst, err := riscv64asm.Decode(code)
	if err != nil {
		return ""
	}
	return normalizeMnemonic(inst.Op.String())
}

func normalizeMnemonic(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "_", "."))
	for _, suffix := range []string{".aqrl", ".aq", ".rl"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

// Agree reports whether our decode of code matches x/arch. Both decoders
// rejecting the word counts as agreement. x/arch names compressed words
// by the instruction they expand to, so c.jr matches jalr.
func Agree(inst riscv.Inst, code []byte) (ours, theirs string, ok bool) {
	theirs = MnemonicOf(code)
	if inst.Op == riscv.OpIllegal {
		return "illegal", theirs, theirs == ""
	}
	ours = inst.Op.String()
	return ours, theirs, ours == theirs || inst.Op.Base().String() == theirs
}

// CrossCheck decodes r with both decoders and collects disagreements.
func CrossCheck(im *elfx.Image, r Region) (CrossCheckReport, error) {
	var rep CrossCheckReport
	err := Walk(im, r, func(pc uint64, inst riscv.Inst) error {
		code, ok := im.SliceVA(pc, uint64(inst.Len))
		if !ok {
			return fmt.Errorf("0x%x: %w", pc, ErrNoCode)
		}
		rep.Checked++
		ours, theirs, ok := Agree(inst, code)
		if ok {
			rep.Agreed++
			return nil
		}
		rep.Mismatches = append(rep.Mismatches, Mismatch{PC: pc, Raw: inst.Raw, Ours: ours, Theirs: theirs})
		return nil
	})
	return rep, err
}
