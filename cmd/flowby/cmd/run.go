package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/config"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/flog"
	"github.com/flowbylang/flowby/internal/interp"
	"github.com/flowbylang/flowby/internal/parser"
)

var (
	evalExpr  string
	dumpAST   bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Flowby workflow file or expression",
	Long: `Execute a Flowby workflow from a file or inline code.

Examples:
  # Run a script file
  flowby run checkout.flow

  # Evaluate inline code
  flowby run -e "log \"hello\""

  # Run with AST dump (for debugging)
  flowby run --dump-ast checkout.flow`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running (for debugging)")
	runCmd.Flags().StringVar(&configPath, "config", ".flowby.yaml", "path to the project configuration file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, origin, err := readScriptInput(evalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}

	p := parser.New(input, origin)
	p.SetAllowNestedFunctions(cfg.AllowNestedFunctions)
	program := p.ParseProgram()

	if violations := p.Violations(); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprint(os.Stderr, v.Format(input, true))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(violations))
	}

	if dumpAST {
		fmt.Println(ast.Print(program))
		fmt.Println()
	}

	logger := flog.Default()
	host := action.NewLoggingHost()

	in := interp.New(host, logger,
		interp.WithLibrarySearchPaths(cfg.LibraryPaths),
		interp.WithMaxWhileIterations(cfg.MaxWhileIterations),
		interp.WithDotEnvPath(cfg.DotEnvPath),
		interp.WithOrigin(origin),
		interp.WithInput(interp.NewConsoleInput(os.Stdin, os.Stdout)),
	)
	in.AllowRecursion = cfg.AllowRecursion
	in.AllowNestedFunctions = cfg.AllowNestedFunctions

	if verbose {
		logger.Infof("running %s", origin)
	}

	runErr := in.Run(program)
	if runErr != nil {
		if fe, ok := runErr.(*errors.FlowbyError); ok {
			fmt.Fprint(os.Stderr, fe.Format(input, true))
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		return fmt.Errorf("execution failed")
	}

	if code := in.ExitCode(); code != 0 {
		os.Exit(int(code))
	}
	return nil
}

// readScriptInput resolves the program text and an origin label from
// either an inline -e expression or the first positional file argument.
func readScriptInput(eval string, args []string) (input, origin string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
