package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/lexer"
	"github.com/flowbylang/flowby/internal/token"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Flowby file or expression",
	Long: `Tokenize (lex) a Flowby program and print the resulting tokens.

Examples:
  flowby lex script.flow
  flowby lex -e "let x = 1"
  flowby lex --show-type --show-pos script.flow`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal/error tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, origin, err := readScriptInput(evalExpr, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", origin)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input, origin)
	toks := l.Tokenize()

	for _, tok := range toks {
		if onlyErrors {
			continue
		}
		printToken(tok)
	}

	errs := l.Errors()
	if onlyErrors {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(toks))
		if len(errs) > 0 {
			fmt.Printf("Errors: %d\n", len(errs))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d lex error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-14s]", tok.Type)
	}

	if tok.Type == token.EOF {
		output += " EOF"
	} else if tok.Lexeme == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Fprintln(os.Stdout, output)
}
