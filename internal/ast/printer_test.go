package ast_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/parser"
)

// TestPrintFixturesSnapshot parses each fixture, re-prints it, and pins
// the printed form against a committed snapshot.
func TestPrintFixturesSnapshot(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "if_else",
			src:  "let x = 1\nif x > 0:\n    log \"positive\"\nelse:\n    log \"non-positive\"\n",
		},
		{
			name: "while_loop",
			src:  "let i = 0\nwhile i < 3:\n    log str(i)\n    i = i + 1\n",
		},
		{
			name: "function_def",
			src:  "function add(a, b):\n    return a + b\n",
		},
		{
			name: "for_each_enumerate",
			src:  "let items = [\"a\", \"b\"]\nfor i, v in enumerate(items):\n    log str(i) + v\n",
		},
		{
			name: "domain_action",
			src:  `navigate "https://example.com" timeout=30` + "\n",
		},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			p := parser.New(fx.src, fx.name+".flow")
			program := p.ParseProgram()
			if violations := p.Violations(); len(violations) > 0 {
				t.Fatalf("unexpected violations for %s: %v", fx.name, violations)
			}
			snaps.MatchSnapshot(t, fx.name, ast.Print(program))
		})
	}
}
