package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/parser"
)

var (
	fmtWrite     bool
	fmtList      bool
	fmtDiff      bool
	fmtRecursive bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files or directories...]",
	Short: "Format Flowby source files",
	Long: `Format Flowby source files using the AST-driven pretty-printer.

By default, fmt formats the files named on the command line and writes
the result to standard output. If no path is provided, it reads from
standard input.

Examples:
  flowby fmt hello.flow
  flowby fmt -w file1.flow file2.flow
  flowby fmt -l -r src/
  flowby fmt -d script.flow`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "display diffs instead of rewriting files")
	fmtCmd.Flags().BoolVarP(&fmtRecursive, "recursive", "r", false, "process directories recursively")
}

func runFmt(_ *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	if len(args) == 0 {
		return formatStdin()
	}

	hasErrors := false
	for _, path := range args {
		if err := processPath(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func processPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if fmtRecursive {
			return processDirectory(path)
		}
		return fmt.Errorf("%s is a directory (use -r to process recursively)", path)
	}
	return formatFile(path)
}

func processDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".flow") {
			return nil
		}
		if err := formatFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", path, err)
		}
		return nil
	})
}

func formatStdin() error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	formatted, err := formatSource(string(src), "<stdin>")
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

func formatFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	original := string(src)

	formatted, err := formatSource(original, filename)
	if err != nil {
		return err
	}
	changed := original != formatted

	switch {
	case fmtList:
		if changed {
			fmt.Println(filename)
		}
	case fmtDiff:
		if changed {
			fmt.Printf("--- %s (original)\n", filename)
			fmt.Printf("+++ %s (formatted)\n", filename)
			showDiff(original, formatted)
		}
	case fmtWrite:
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("error writing file: %w", err)
			}
			if verbose {
				fmt.Printf("Formatted %s\n", filename)
			}
		}
	default:
		fmt.Print(formatted)
	}
	return nil
}

func formatSource(source, origin string) (string, error) {
	p := parser.New(source, origin)
	program := p.ParseProgram()

	if violations := p.Violations(); len(violations) > 0 {
		var errMsg strings.Builder
		errMsg.WriteString("Parse violations:\n")
		for _, v := range violations {
			errMsg.WriteString(v.Format(source, false))
		}
		return "", fmt.Errorf("%s", errMsg.String())
	}

	return ast.Print(program) + "\n", nil
}

func showDiff(original, formatted string) {
	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	maxLines := len(origLines)
	if len(fmtLines) > maxLines {
		maxLines = len(fmtLines)
	}

	for i := 0; i < maxLines; i++ {
		var origLine, fmtLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}
		if origLine != fmtLine {
			if origLine != "" {
				fmt.Printf("- %s\n", origLine)
			}
			if fmtLine != "" {
				fmt.Printf("+ %s\n", fmtLine)
			}
		}
	}
}

// FormatBytes formats source code provided as bytes, for use by other
// tooling that wants to reuse the CLI's formatter without shelling out.
func FormatBytes(src []byte, origin string) ([]byte, error) {
	formatted, err := formatSource(string(src), origin)
	if err != nil {
		return nil, err
	}
	return []byte(formatted), nil
}

// FormatFile formats a file in place, returning whether it changed.
func FormatFile(filename string) (bool, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return false, err
	}
	formatted, err := FormatBytes(src, filename)
	if err != nil {
		return false, err
	}
	changed := !bytes.Equal(src, formatted)
	if changed {
		if err := os.WriteFile(filename, formatted, 0644); err != nil {
			return false, err
		}
	}
	return changed, nil
}
