package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/p7g/llvm-lang/internal/compiler"
	"github.com/p7g/llvm-lang/internal/errors"
)

var typesCmd = &cobra.Command{
	Use:   "types [file]",
	Short: "Print the declared-type table produced by a successful compile",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	checked, err := compiler.Compile(source)
	if err != nil {
		if ce, ok := err.(*errors.CompilerError); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(ce, source, filename, wantColor()))
			return fmt.Errorf("types failed")
		}
		return err
	}

	names := make([]string, 0, len(checked.DeclaredTypes))
	for name := range checked.DeclaredTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, checked.DeclaredTypes[name])
	}
	return nil
}
