// Command golox is a tree-walking interpreter for the Lox language.
package main

import (
	"fmt"
	"os"

	"github.com/golox-lang/golox/cmd/golox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
