package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags (ldflags), following the teacher's
	// cmd/dwscript/cmd/root.go convention.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "golox [file]",
	Short: "golox is a tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of Lox, a small dynamically-typed,
class-based scripting language.

Running golox with a file argument executes that file. Running it with no
arguments starts a line-based REPL.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(args[0])
		}
		return runREPL()
	},
}

// Execute runs the root command, returning an *ExitError for the driver to
// translate into the process exit code of spec.md §6 (0/65/70).
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output: caret-style diagnostics (vs. one-line) and progress lines to stderr")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace executed statements and GC cycles to stderr")
}
