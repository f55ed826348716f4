package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/lexer"
	"github.com/p7g/llvm-lang/internal/parser"
	"github.com/p7g/llvm-lang/internal/semantic"
)

var printPassName string

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the program after a given pipeline stage",
	Long: `Print the program's source-like rendering after running the pipeline up
to and including --pass. Valid values: parse, validate_semantics,
resolve_declared_types, annotate_expressions, instantiate_type_expressions,
check_types (the default, equivalent to the full pipeline).`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printPassName, "pass", "check_types", "pipeline stage to stop after")
	rootCmd.AddCommand(printCmd)
}

var validPassNames = map[string]bool{
	"parse":                        true,
	"validate_semantics":           true,
	"resolve_declared_types":       true,
	"annotate_expressions":         true,
	"instantiate_type_expressions": true,
	"check_types":                  true,
}

func runPrint(cmd *cobra.Command, args []string) error {
	if !validPassNames[printPassName] {
		return fmt.Errorf("unknown pass %q", printPassName)
	}

	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	p := parser.New(l)
	program, err := p.ParseProgram()
	if err != nil {
		return printErr(cmd, err, source, filename)
	}

	if printPassName == "parse" {
		fmt.Fprintln(cmd.OutOrStdout(), program.String())
		return nil
	}

	ctx := semantic.NewPassContext()
	for _, pass := range semantic.DefaultPasses() {
		program, err = pass.Run(program, ctx)
		if err != nil {
			return printErr(cmd, err, source, filename)
		}
		if pass.Name() == printPassName {
			break
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), program.String())
	return nil
}

func printErr(cmd *cobra.Command, err error, source, filename string) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(ce, source, filename, wantColor()))
		return fmt.Errorf("print failed")
	}
	return err
}
