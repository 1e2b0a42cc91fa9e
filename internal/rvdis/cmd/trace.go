package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"rvdis/internal/analysis"
	"rvdis/internal/disasm"
)

var traceCmd = &cobra.Command{
	Use:   "trace <log>",
	Short: "Disassemble an emulator execution trace",
	Long: `Disassemble a trace with one executed instruction per line, written as
"<pc> <insn>" in hex. A jump in the pc sequence starts a fresh history.
Use "-" to read standard input.`,
	Example: `
# Disassemble a finished trace
rvdis trace run.log

# Follow a trace while the emulator writes it
rvdis trace --follow run.log
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		w := bufio.NewWriter(cmd.OutOrStdout())
		defer w.Flush()
		tr := analysis.NewTracer(disasm.NewSession(w, cfg.Options(nil, os.Stdout, 0, false)))

		switch {
		case args[0] == "-":
			return tr.Run(cmd.InOrStdin())
		case follow:
			return followTrace(cmd, args[0], tr, w)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open trace: %w", err)
		}
		defer f.Close()
		return tr.Run(f)
	},
}

func init() {
	traceCmd.Flags().BoolP("follow", "f", false, "Keep reading as the trace grows")
}

func followTrace(cmd *cobra.Command, path string, tr *analysis.Tracer, w *bufio.Writer) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("follow trace: %w", err)
	}
	defer t.Cleanup()
	defer t.Stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				slog.Warn("Trace read error", "error", line.Err)
				continue
			}
			if err := tr.FeedLine(line.Text); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}
