package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"rvdis/internal/analysis"
	"rvdis/internal/disasm"
	"rvdis/internal/riscv"
)

var wordsCmd = &cobra.Command{
	Use:   "words [hex...]",
	Short: "Disassemble raw instruction words",
	Long: `Disassemble instruction words given in hex, as arguments or whitespace separated on
standard input. Consecutive words are placed at consecutive addresses starting at --pc.`,
	Example: `
# A lui/addi pair
rvdis words --pc 0x80000000 000102b7 00428293

# From a pipe
echo "0505 8082" | rvdis words
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("pc")
		pc, err := parseAddr(base)
		if err != nil {
			return fmt.Errorf("--pc: %w", err)
		}

		words := args
		if len(words) == 0 {
			if term.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("no words given")
			}
			if words, err = readWords(cmd.InOrStdin()); err != nil {
				return err
			}
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		sess := disasm.NewSession(w, cfg.Options(nil, os.Stdout, 0, false))
		if err := disassembleWords(sess, pc, words); err != nil {
			return err
		}
		return w.Flush()
	},
}

func init() {
	wordsCmd.Flags().String("pc", "0", "Address of the first word (hex)")
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return words, nil
}

// parseWord decodes one hex word. Its width picks the encoding length
// only through the low bits, so "00000505" is still c.addi.
func parseWord(s string) (riscv.Inst, error) {
	s = strings.ReplaceAll(s, "_", "")
	raw, err := analysis.ParseHex(s)
	if err != nil {
		return riscv.Inst{}, fmt.Errorf("word %q: %w", s, err)
	}
	return riscv.Decode(raw), nil
}

func disassembleWords(sess *disasm.Session, pc uint64, words []string) error {
	for _, s := range words {
		inst, err := parseWord(s)
		if err != nil {
			return err
		}
		if err := sess.Print(inst, pc); err != nil {
			return err
		}
		pc += uint64(inst.Len)
	}
	return nil
}
