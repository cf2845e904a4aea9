package cmd

import (
	"fmt"
	"os"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file and print the resulting AST",
	Long: `Scan and parse a Lox program and print its AST in a compact
parenthesized form, one line per top-level statement. Useful for debugging
the parser (equivalent to the teacher's --dump-ast).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return parseSource(evalExpr)
		}
		if len(args) == 1 {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}
			return parseSource(string(content))
		}
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(src string) error {
	toks := scanner.New(src).ScanTokens()
	stmts, parseErrs := parser.New(toks).Parse()
	for _, stmt := range stmts {
		fmt.Println(ast.Print(stmt))
	}
	if parseErrs.HasErrors() {
		printStaticErrors(os.Stderr, parseErrs, src)
		return &ExitError{Code: 65, Err: fmt.Errorf("%d syntax error(s)", len(parseErrs.Errors))}
	}
	return nil
}
