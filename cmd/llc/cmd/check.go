package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/p7g/llvm-lang/internal/compiler"
	"github.com/p7g/llvm-lang/internal/errors"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the full semantic pipeline over a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	runID := uuid.New()
	if flagVerbose {
		fmt.Fprintf(cmd.OutOrStdout(), "run %s: checking %s (%s)\n", runID, filename, humanize.Bytes(uint64(len(source))))
	}

	checked, err := compiler.Compile(source)
	if err != nil {
		if ce, ok := err.(*errors.CompilerError); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(ce, source, filename, wantColor()))
			return fmt.Errorf("check failed")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d declared type(s)\n", len(checked.DeclaredTypes))
	return nil
}
