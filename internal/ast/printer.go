package ast

import (
	"strconv"
	"strings"
)

// Print renders a Program back to indented Flowby source text. It is used
// by `flowby fmt`. Block statements (if/else, for, while, step, function,
// when) are printed structurally; every other statement is printed
// through its String method, so the output is not re-parseable for
// assignments ("<assign> = ..."), domain actions ("navigate ..."), exit
// statements, input() calls, call keyword arguments, and exported
// function bodies.
func Print(p *Program) string {
	var sb strings.Builder
	printBlock(&sb, p.Statements, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func printBlock(sb *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		printStmt(sb, s, depth)
	}
}

func printStmt(sb *strings.Builder, s Statement, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *If:
		sb.WriteString("if " + n.Cond.String() + ":\n")
		printBlock(sb, n.Then, depth+1)
		if n.Else != nil {
			indent(sb, depth)
			sb.WriteString("else:\n")
			printBlock(sb, n.Else, depth+1)
		}
	case *For:
		sb.WriteString("for " + strings.Join(n.Vars, ", ") + " in " + n.Iterable.String() + ":\n")
		printBlock(sb, n.Body, depth+1)
	case *While:
		sb.WriteString("while " + n.Cond.String() + ":\n")
		printBlock(sb, n.Body, depth+1)
	case *Step:
		sb.WriteString("step " + strconv.Quote(n.Label) + ":\n")
		printBlock(sb, n.Body, depth+1)
	case *FunctionDef:
		sb.WriteString("function " + n.Name + "(" + strings.Join(n.Params, ", ") + "):\n")
		printBlock(sb, n.Body, depth+1)
	case *When:
		sb.WriteString("when " + n.Subject.String() + ":\n")
		for _, c := range n.Cases {
			indent(sb, depth+1)
			if c.Otherwise {
				sb.WriteString("otherwise:\n")
			} else {
				parts := make([]string, len(c.Values))
				for i, v := range c.Values {
					parts[i] = v.String()
				}
				sb.WriteString(strings.Join(parts, " or ") + ":\n")
			}
			printBlock(sb, c.Body, depth+2)
		}
	default:
		sb.WriteString(s.String() + "\n")
	}
}
