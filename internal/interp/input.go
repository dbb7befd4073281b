package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/value"
)

// InputReader is what input() blocks on when the session is interactive.
// Read may return io.EOF to signal the console was closed, which falls
// back to the default value.
type InputReader interface {
	Read(prompt string, def value.Value, hasDefault bool, typ string) (value.Value, error)
}

// ConsoleInput reads input() answers line by line from In, echoing the
// prompt (and the default, when one exists) to Out.
type ConsoleInput struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

func NewConsoleInput(in io.Reader, out io.Writer) *ConsoleInput {
	return &ConsoleInput{In: in, Out: out}
}

func (c *ConsoleInput) Read(prompt string, def value.Value, hasDefault bool, typ string) (value.Value, error) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	if c.Out != nil {
		if hasDefault {
			fmt.Fprintf(c.Out, "%s [%s] ", prompt, value.Str(def))
		} else {
			fmt.Fprintf(c.Out, "%s ", prompt)
		}
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return value.None, err
		}
		if hasDefault {
			return def, nil
		}
		return value.None, io.EOF
	}
	line := strings.TrimSpace(c.scanner.Text())
	if line == "" && hasDefault {
		return def, nil
	}
	return convertInput(line, typ)
}

// convertInput applies input()'s type= coercion to a raw console line.
func convertInput(line, typ string) (value.Value, error) {
	switch typ {
	case "", "str", "string":
		return value.String(line), nil
	case "int":
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return value.None, fmt.Errorf("input: %q is not an integer", line)
		}
		return value.Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return value.None, fmt.Errorf("input: %q is not a number", line)
		}
		return value.Float(f), nil
	case "bool":
		switch strings.ToLower(line) {
		case "y", "yes", "true", "1":
			return value.True, nil
		case "n", "no", "false", "0":
			return value.False, nil
		}
		return value.None, fmt.Errorf("input: %q is not a yes/no answer", line)
	default:
		return value.None, fmt.Errorf("input: unknown type %q", typ)
	}
}

// evalInput: interactive contexts block on the InputReader;
// non-interactive contexts use the default, or fail when no default
// exists.
func (in *Interpreter) evalInput(n *ast.Input, env *Environment) value.Value {
	prompt := ""
	if n.Prompt != nil {
		prompt = value.Str(in.eval(n.Prompt, env))
	}
	var def value.Value
	hasDefault := n.Default != nil
	if hasDefault {
		def = in.eval(n.Default, env)
	}
	if in.signaled() {
		return value.None
	}

	if in.Input == nil {
		if hasDefault {
			return def
		}
		in.failKey(errors.RuntimeError, n, "runtime.input_required")
		return value.None
	}

	v, err := in.Input.Read(prompt, def, hasDefault, n.Type)
	if err == io.EOF && hasDefault {
		return def
	}
	if err != nil {
		in.fail(n, "%s", err)
		return value.None
	}
	return v
}
