// Package cmd implements the rvdis command line.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"rvdis/internal/analysis"
	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
	"rvdis/internal/rvdis/log"
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = DefaultConfig()

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("style", "", "Color style (see 'rvdis info --styles')")
	rootCmd.PersistentFlags().Int("history", 0, "Instructions kept for address reconstruction")
	rootCmd.PersistentFlags().String("pc-offset", "", "Subtract this hex value from every displayed pc")
	rootCmd.PersistentFlags().String("gp", "", "Global pointer value (hex) for gp-relative annotations")
	rootCmd.PersistentFlags().Bool("no-strings", false, "Do not annotate string literals")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the listing instead of opening the viewer")
	rootCmd.Flags().StringP("symbol", "s", "", "Disassemble only this function")
	rootCmd.Flags().String("start", "", "Disassemble from this hex address")
	rootCmd.Flags().Int("count", 0, "Number of instructions to disassemble with --start")

	rootCmd.AddCommand(wordsCmd, traceCmd, infoCmd, verifyCmd, schemaCmd)
}

var rootCmd = &cobra.Command{
	Use:   "rvdis [elf]",
	Short: "RISC-V disassembler",
	Long: `rvdis disassembles RV64GC machine code from ELF files, raw words and emulator traces.
Absolute addresses are reconstructed from pc-relative, register-pair and gp-relative
immediates and annotated with the nearest symbol.`,
	Example: `
# Browse an ELF file interactively
rvdis ./kernel.elf

# Print one function
rvdis -n --symbol main ./a.out

# Print 32 instructions from an address
rvdis -n --start 0x80000000 --count 32 ./kernel.elf
  `,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := LoadConfig(path)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, &loaded); err != nil {
			return err
		}
		cfg = loaded
		log.Setup(cfg.Debug)
		slog.Debug("Configuration loaded", "config", path, "style", cfg.Style, "history", cfg.HistoryLength)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log: %v\n", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		im, err := elfx.Open(args[0])
		if err != nil {
			return err
		}
		defer im.Close()

		syms := analysis.NewSymbolTable(im)
		region, err := selectRegion(cmd, im, syms)
		if err != nil {
			return err
		}
		slog.Debug("Disassembling", "region", region.Name, "start", fmt.Sprintf("0x%x", region.Start), "size", region.Size)

		noTUI, _ := cmd.Flags().GetBool("no-tui")
		if noTUI || !term.IsTerminal(os.Stdout.Fd()) {
			return printListing(im, syms, region)
		}

		program := tea.NewProgram(
			newModel(im, syms, region),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func selectRegion(cmd *cobra.Command, im *elfx.Image, syms *analysis.SymbolTable) (analysis.Region, error) {
	if name, _ := cmd.Flags().GetString("symbol"); name != "" {
		return analysis.SymbolRegion(im, syms, name)
	}
	if start, _ := cmd.Flags().GetString("start"); start != "" {
		va, err := parseAddr(start)
		if err != nil {
			return analysis.Region{}, fmt.Errorf("--start: %w", err)
		}
		count, _ := cmd.Flags().GetInt("count")
		return analysis.AddressRegion(im, va, count)
	}
	if im.Text.Size == 0 {
		return analysis.Region{}, fmt.Errorf("%s: no executable section", im.Path)
	}
	return analysis.TextRegion(im), nil
}

// imageLookup is the symbol capability for listings of im.
func imageLookup(im *elfx.Image, syms *analysis.SymbolTable) disasm.SymbolLookup {
	if cfg.StringAnnotations() {
		return analysis.PLTLookup(im, analysis.ImageLookup(im, syms))
	}
	return analysis.PLTLookup(im, syms.Lookup)
}

func printListing(im *elfx.Image, syms *analysis.SymbolTable, region analysis.Region) error {
	w := bufio.NewWriter(os.Stdout)
	sess := disasm.NewSession(w, cfg.Options(imageLookup(im, syms), os.Stdout, im.GP, im.HasGP))
	if err := analysis.Print(im, region, sess); err != nil {
		return err
	}
	return w.Flush()
}

func Execute() {
	// Bypass fang's rendering when printing plain listings.
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" {
			noTUI = true
			break
		}
	}
	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
	} else {
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}
