package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/parser"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Flowby source and display the AST",
	Long: `Parse Flowby source code and display its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
inline expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse inline code from the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, origin string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no code provided")
		}
		input, origin = args[0], "<eval>"
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input, origin = string(data), args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input, origin = string(data), "<stdin>"
	}

	p := parser.New(input, origin)
	program := p.ParseProgram()

	if violations := p.Violations(); len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "Parse violations:")
		for _, v := range violations {
			fmt.Fprint(os.Stderr, v.Format(input, false))
		}
		return fmt.Errorf("parsing failed with %d violation(s)", len(violations))
	}

	fmt.Println(ast.Print(program))
	return nil
}
