// Package ast defines the Abstract Syntax Tree node types produced by the
// Flowby parser: a closed tagged-variant family of
// statement and expression nodes, every one of which carries its source
// line for diagnostics.
package ast

import "github.com/flowbylang/flowby/internal/token"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Line() int
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Line() int { return 0 }
func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// NodeBase is embedded by every concrete node to carry its source position
// and supply Line()/TokenLiteral() without repeating boilerplate. It is
// exported so parser code outside this package can populate it directly.
type NodeBase struct {
	Pos token.Position
	Tok string
}

func (b NodeBase) Line() int           { return b.Pos.Line }
func (b NodeBase) TokenLiteral() string { return b.Tok }

// At constructs a NodeBase from a token position and lexeme.
func At(pos token.Position, lexeme string) NodeBase {
	return NodeBase{Pos: pos, Tok: lexeme}
}
