package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a Flowby file for parse and static-scope violations",
	Long: `Parse a Flowby file and report any lex, parse, or semantic
violations without running it: undeclared names, duplicate declarations,
break/continue outside a loop, return outside a function, and library
file constraints.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	input := string(content)

	p := parser.New(input, args[0])
	p.ParseProgram()

	violations := p.Violations()
	if len(violations) == 0 {
		fmt.Printf("%s: OK\n", args[0])
		return nil
	}

	for _, v := range violations {
		fmt.Fprint(os.Stderr, v.Format(input, true))
	}
	return fmt.Errorf("%s: %d violation(s)", args[0], len(violations))
}
