package cmd

import (
	"fmt"
	"os"

	"github.com/golox-lang/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a Lox file and print the resulting tokens",
	Long: `Scan a Lox program and print the resulting token stream, one token
per line. Useful for debugging the scanner.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if evalExpr != "" {
			return tokenizeSource(evalExpr)
		}
		if len(args) == 1 {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}
			return tokenizeSource(string(content))
		}
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func tokenizeSource(src string) error {
	s := scanner.New(src)
	for _, tok := range s.ScanTokens() {
		fmt.Println(tok.String())
	}
	for _, e := range s.Errors() {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if len(s.Errors()) > 0 {
		return &ExitError{Code: 65, Err: fmt.Errorf("%d lexical error(s)", len(s.Errors()))}
	}
	return nil
}
