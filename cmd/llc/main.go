// Command llc is the CLI front end for the semantic pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/p7g/llvm-lang/cmd/llc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
