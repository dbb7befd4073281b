package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRunScriptReportsParseAndRuntimeErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectError   bool
		errorContains string
	}{
		{
			name:          "use before declaration is a violation",
			input:         "let x = y\nlet y = 1\n",
			expectError:   true,
			errorContains: "y",
		},
		{
			name:          "undefined variable is a parse violation",
			input:         "log undefinedThing\n",
			expectError:   true,
		},
		{
			name:        "valid program",
			input:       "let x = 5\nlog str(x)\n",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalExpr = tt.input
			dumpAST = false
			configPath = ".flowby.yaml"

			oldStderr := os.Stderr
			r, w, _ := os.Pipe()
			os.Stderr = w

			err := runScript(nil, []string{})

			w.Close()
			os.Stderr = oldStderr
			var buf bytes.Buffer
			buf.ReadFrom(r)
			stderr := buf.String()

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none, stderr: %s", stderr)
				}
				if tt.errorContains != "" && !strings.Contains(stderr, tt.errorContains) {
					t.Errorf("expected stderr to contain %q, got: %s", tt.errorContains, stderr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v, stderr: %s", err, stderr)
			}
		})
	}
}

func TestReadScriptInputRequiresEitherEvalOrFile(t *testing.T) {
	_, _, err := readScriptInput("", nil)
	if err == nil {
		t.Error("expected an error when neither -e nor a file is given")
	}
}

func TestReadScriptInputPrefersEval(t *testing.T) {
	input, origin, err := readScriptInput("log 1\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != "log 1\n" || origin != "<eval>" {
		t.Errorf("got input=%q origin=%q", input, origin)
	}
}
