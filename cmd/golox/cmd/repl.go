package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golox-lang/golox/internal/builtins"
	"github.com/golox-lang/golox/internal/evaluator"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
	"github.com/mattn/go-isatty"
)

// runREPL implements spec.md §6's bare-invocation mode: one line is
// scanned, parsed, resolved, and evaluated at a time against a persistent
// global environment and heap; a static or runtime error is printed and the
// session continues rather than exiting (§7's "or the REPL returns to its
// prompt").
func runREPL() error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if verbose {
		fmt.Fprintln(os.Stderr, "Starting REPL...")
	}

	h := heap.New(heap.DefaultThreshold)
	h.Trace = trace
	h.Stderr = os.Stderr
	eval := evaluator.New(h, os.Stdout)
	eval.Trace = trace
	builtins.Register(h, eval.Globals, clockNow)

	scan := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stdout, "> ")
		}
		if !scan.Scan() {
			if interactive {
				fmt.Fprintln(os.Stdout)
			}
			return nil
		}
		line := scan.Text()
		if line == "" {
			continue
		}
		replLine(eval, line)
	}
}

func replLine(eval *evaluator.Evaluator, line string) {
	toks := scanner.New(line).ScanTokens()
	stmts, parseErrs := parser.New(toks).Parse()
	if parseErrs.HasErrors() {
		printStaticErrors(os.Stderr, parseErrs, line)
		return
	}

	locals, resolveErrs := resolver.Resolve(stmts)
	if resolveErrs.HasErrors() {
		printStaticErrors(os.Stderr, resolveErrs, line)
		return
	}
	eval.SetLocals(locals)

	if err := eval.Interpret(stmts); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
