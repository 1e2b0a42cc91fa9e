package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rvdis/internal/analysis"
	"rvdis/internal/elfx"
	"rvdis/internal/rvdis/styles"
	"rvdis/internal/ui/colorize"
)

var infoCmd = &cobra.Command{
	Use:   "info [elf]",
	Short: "Summarize a RISC-V ELF file",
	Long:  "Show the entry point, global pointer, sections and symbol counts of a RISC-V ELF file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var md string
		listStyles, _ := cmd.Flags().GetBool("styles")
		switch {
		case listStyles:
			md = stylesMarkdown()
		case len(args) == 1:
			im, err := elfx.Open(args[0])
			if err != nil {
				return err
			}
			defer im.Close()
			md = infoMarkdown(im, analysis.NewSymbolTable(im))
		default:
			return fmt.Errorf("usage: rvdis info <elf>")
		}

		if !colorize.Enabled(cfg.NoColor, os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		r, err := styles.MarkdownRenderer(100)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render info: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	infoCmd.Flags().Bool("styles", false, "List the available color styles")
}

func infoMarkdown(im *elfx.Image, syms *analysis.SymbolTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", filepath.Base(im.Path))
	if im.File != nil {
		fmt.Fprintf(&b, "- **Class**: %v, %v\n", im.File.Class, im.File.Type)
	}
	fmt.Fprintf(&b, "- **Entry**: `0x%x`\n", im.Entry)
	if im.HasGP {
		fmt.Fprintf(&b, "- **Global pointer**: `0x%x`\n", im.GP)
	} else {
		b.WriteString("- **Global pointer**: not defined\n")
	}
	if sd := im.SData; sd.Size != 0 {
		fmt.Fprintf(&b, "- **Small data**: `0x%x`-`0x%x`", sd.VA, sd.VA+sd.Size)
		if im.HasGP {
			fmt.Fprintf(&b, " (gp%+#x)", int64(sd.VA-im.GP))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- **Symbols**: %d (%d static, %d dynamic)\n", syms.Len(), len(im.Syms), len(im.Dynsyms))
	if n := len(im.PLTStubs); n > 0 {
		fmt.Fprintf(&b, "- **PLT stubs**: %d at `0x%x`\n", n, im.PLT.VA)
	}
	if n := len(im.PLTRels); n > 0 {
		bound := 0
		for _, r := range im.PLTRels {
			if r.PLTAddr != 0 && im.IsPLTEntry(r.PLTAddr) {
				bound++
			}
		}
		fmt.Fprintf(&b, "- **PLT relocations**: %d (%d bound to stubs)\n", n, bound)
	}

	b.WriteString("\n## Sections\n\n")
	b.WriteString("| Name | Address | Size | Flags |\n|---|---|---|---|\n")
	for _, s := range im.Sections {
		fmt.Fprintf(&b, "| `%s` | `0x%x` | %d | %v |\n", s.Name, s.VA, s.Size, s.Flags)
	}
	return b.String()
}

func stylesMarkdown() string {
	var b strings.Builder
	b.WriteString("# Styles\n\n")
	for _, name := range colorize.Styles() {
		marker := ""
		if name == colorize.DefaultStyle {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "- `%s`%s\n", name, marker)
	}
	return b.String()
}
