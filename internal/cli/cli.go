// Package cli implements the EdgeDesk terminal interface: the cobra
// command tree, the interactive dashboard and its panel rendering.
package cli

import (
	"fmt"
	"os"
)

// Run executes the root command and exits non-zero on failure. main
// delegates here so the command tree stays private to this package.
func Run() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
