package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"rvdis/internal/analysis"
	"rvdis/internal/elfx"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <elf>",
	Short: "Cross-check the decoder against golang.org/x/arch",
	Long: `Decode the selected code of an ELF file with both rvdis and the riscv64asm package
from golang.org/x/arch and report every instruction whose mnemonic differs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		im, err := elfx.Open(args[0])
		if err != nil {
			return err
		}
		defer im.Close()

		region, err := selectRegion(cmd, im, analysis.NewSymbolTable(im))
		if err != nil {
			return err
		}
		rep, err := analysis.CrossCheck(im, region)
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		out := cmd.OutOrStdout()
		for i, m := range rep.Mismatches {
			if limit > 0 && i == limit {
				fmt.Fprintf(out, "... %d more\n", len(rep.Mismatches)-limit)
				break
			}
			fmt.Fprintln(out, m)
		}
		fmt.Fprintf(out, "%d instructions, %d agree, %d differ\n", rep.Checked, rep.Agreed, len(rep.Mismatches))
		slog.Debug("Cross-check finished", "region", region.Name, "checked", rep.Checked)

		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(rep.Mismatches) > 0 {
			return fmt.Errorf("%d decoder mismatches", len(rep.Mismatches))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringP("symbol", "s", "", "Check only this function")
	verifyCmd.Flags().String("start", "", "Check from this hex address")
	verifyCmd.Flags().Int("count", 0, "Number of instructions to check with --start")
	verifyCmd.Flags().Int("limit", 50, "Maximum mismatches to print (0 for all)")
	verifyCmd.Flags().Bool("strict", false, "Exit with an error when any instruction differs")
}
