// Command minic lexes, parses, binds, compiles, and runs a minilang
// source file.
package main

import (
	"os"

	"github.com/minilang/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
