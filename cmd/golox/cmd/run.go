package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/golox-lang/golox/internal/builtins"
	"github.com/golox-lang/golox/internal/errs"
	"github.com/golox-lang/golox/internal/evaluator"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return runSource(evalExpr, "<eval>", os.Stdout)
		}
		if len(args) == 1 {
			return runFile(args[0])
		}
		return runREPL()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return runSource(string(content), filename, os.Stdout)
}

// runSource drives the full scan → parse → resolve → evaluate pipeline once
// and reports results per spec.md §7: static errors (lexical or syntax, plus
// every accumulated resolve error) are printed and tagged exit 65; a runtime
// error is printed and tagged exit 70.
func runSource(src, filename string, stdout io.Writer) error {
	if verbose {
		fmt.Fprintf(os.Stderr, "Running %s (%d bytes)...\n", filename, len(src))
	}

	s := scanner.New(src)
	toks := s.ScanTokens()

	var staticErrs errs.List
	for _, e := range s.Errors() {
		staticErrs.Add(errs.Lexical, e.Pos, "%s", e.Message)
	}

	stmts, parseErrs := parser.New(toks).Parse()
	staticErrs.Errors = append(staticErrs.Errors, parseErrs.Errors...)

	if !staticErrs.HasErrors() {
		locals, resolveErrs := resolver.Resolve(stmts)
		staticErrs.Errors = append(staticErrs.Errors, resolveErrs.Errors...)
		if !staticErrs.HasErrors() {
			if verbose {
				fmt.Fprintf(os.Stderr, "Parsed %d top-level statement(s), evaluating...\n", len(stmts))
			}
			h := heap.New(heap.DefaultThreshold)
			h.Trace = trace
			h.Stderr = os.Stderr
			eval := evaluator.New(h, stdout)
			eval.Trace = trace
			builtins.Register(h, eval.Globals, clockNow)
			eval.SetLocals(locals)

			if err := eval.Interpret(stmts); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return &ExitError{Code: 70, Err: err}
			}
			return nil
		}
	}

	printStaticErrors(os.Stderr, &staticErrs, src)
	return &ExitError{Code: 65, Err: fmt.Errorf("%d static error(s)", len(staticErrs.Errors))}
}
