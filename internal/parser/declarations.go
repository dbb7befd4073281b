package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

func (p *Parser) parseLetDecl() ast.Statement {
	tok := p.advance()
	name := p.expect(token.IDENT, "after let").Lexeme
	p.expect(token.ASSIGN, "in let declaration")
	value := p.parseExpression()
	p.declare(name, semantic.KindVariable, tok.Pos)
	return &ast.LetDecl{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: name, Value: value}
}

func (p *Parser) parseConstDecl() ast.Statement {
	tok := p.advance()
	name := p.expect(token.IDENT, "after const").Lexeme
	p.expect(token.ASSIGN, "in const declaration")
	value := p.parseExpression()
	p.declare(name, semantic.KindConst, tok.Pos)
	return &ast.ConstDecl{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: name, Value: value}
}

// parseResourceDecl handles the legacy `resource NAME "spec-path"` form,
// kept so older scripts keep running; it desugars to
// `let NAME = Resource("spec-path")`.
func (p *Parser) parseResourceDecl() ast.Statement {
	tok := p.advance()
	name := p.expect(token.IDENT, "after resource").Lexeme
	path := p.expect(token.STRING, "as resource spec path")
	p.declare(name, semantic.KindVariable, tok.Pos)
	call := &ast.Call{
		NodeBase: ast.At(tok.Pos, tok.Lexeme),
		Callee:   &ast.Identifier{NodeBase: ast.At(tok.Pos, "Resource"), Name: "Resource"},
		Args:     []ast.Expression{&ast.Literal{NodeBase: ast.At(path.Pos, path.Lexeme), Value: path.Lexeme}},
	}
	return &ast.LetDecl{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: name, Value: call}
}

// declare binds name in the current scope, rejecting duplicate declarations
// and attempts to shadow an always-defined system name.
func (p *Parser) declare(name string, kind semantic.SymbolKind, pos token.Position) {
	if p.symbols.IsBuiltin(name) {
		p.violationKey(errors.SemanticError, pos, "semantic.shadow_builtin", name)
		return
	}
	if !p.symbols.Define(name, kind, pos.Line) {
		p.violationKey(errors.SemanticError, pos, "semantic.duplicate_declaration", name)
	}
}
