// Package cmd implements the llc command-line front end over
// internal/compiler, grounded on the teacher's cobra command layout
// (cmd/dwscript/cmd/*.go in CWBudde-go-dws): one file per subcommand, a
// package-level rootCmd, persistent flags read by every subcommand.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagVerbose  bool
	flagNoColor  bool
	loadedConfig *Config
)

var rootCmd = &cobra.Command{
	Use:   "llc",
	Short: "Semantic analysis front end for the struct/union/enum/newtype language",
	Long: `llc parses and type-checks programs written in the small generic,
structurally-typed language described by this module's semantic pipeline:
declared-type resolution, expression annotation, generic instantiation,
and type checking.`,
	SilenceUsage: true,
}

// Execute runs the root command; errors are returned to main for exit-code
// handling rather than printed here.
func Execute() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	loadedConfig = cfg

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print per-pass diagnostics")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored error output")
	return rootCmd.Execute()
}

// wantColor decides whether error output should be colorized: an explicit
// --no-color flag always wins, then .llcrc.yaml, then whether stderr is a
// terminal (spec.md's ambient stack wires go-isatty for exactly this).
func wantColor() bool {
	if flagNoColor {
		return false
	}
	if loadedConfig != nil && loadedConfig.Color != nil {
		return *loadedConfig.Color
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

func readSource(args []string) (string, string, error) {
	if len(args) == 0 {
		return "", "", fmt.Errorf("expected a source file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}
