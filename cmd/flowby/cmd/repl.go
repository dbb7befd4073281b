package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/flog"
	"github.com/flowbylang/flowby/internal/interp"
	"github.com/flowbylang/flowby/internal/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Flowby read-eval-print loop",
	Long: `Start a line-oriented REPL sharing one interpreter and environment
across inputs. Enter a blank line to run what you've typed so far.
Each block is parsed on its own, so a name declared in an earlier block
is reported as undefined when a later block refers to it.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	logger := flog.Default()
	in := interp.New(action.NewLoggingHost(), logger,
		interp.WithInput(interp.NewConsoleInput(os.Stdin, os.Stdout)))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("flowby repl — blank line runs the buffered block, Ctrl-D exits")

	var buf strings.Builder
	count := 0
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if buf.Len() == 0 {
				continue
			}
			evalREPLBlock(in, buf.String(), count)
			count++
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func evalREPLBlock(in *interp.Interpreter, src string, n int) {
	origin := fmt.Sprintf("<repl:%d>", n)
	p := parser.New(src, origin)
	program := p.ParseProgram()

	if violations := p.Violations(); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprint(os.Stderr, v.Format(src, true))
		}
		return
	}

	if err := in.Run(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
