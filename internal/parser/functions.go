package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

// parseFunctionDef parses `function name(params): body`. Nested function
// definitions are rejected by default; SetAllowNestedFunctions opts into
// them, for scripts that build closures with named inner functions rather
// than lambdas.
func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.advance()
	if p.funcDepth > 0 && !p.allowNestedFunctions {
		p.violationKey(errors.SemanticError, tok.Pos, "semantic.nested_function")
	}
	name := p.expect(token.IDENT, "as function name").Lexeme
	p.expect(token.LPAREN, "to begin parameter list")
	var params []string
	for !p.check(token.RPAREN) && !p.atEOF() {
		params = append(params, p.expect(token.IDENT, "as parameter name").Lexeme)
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA, "between parameters")
		}
	}
	p.expect(token.RPAREN, "to close parameter list")

	p.declare(name, semantic.KindFunction, tok.Pos)

	p.symbols.Push()
	for _, param := range params {
		p.symbols.Define(param, semantic.KindParameter, tok.Pos.Line)
	}
	p.funcDepth++
	savedLoopDepth := p.loopDepth
	p.loopDepth = 0 // break/continue do not cross a function boundary
	body := p.parseBlock()
	p.loopDepth = savedLoopDepth
	p.funcDepth--
	p.symbols.Pop()

	return &ast.FunctionDef{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: name, Params: params, Body: body}
}

// parseReturn rejects `return` outside a function body.
func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance()
	if p.funcDepth <= 0 {
		p.violationKey(errors.SemanticError, tok.Pos, "semantic.return_outside_function")
	}
	var value ast.Expression
	if !p.check(token.NEWLINE) && !p.atEOF() {
		value = p.parseExpression()
	}
	return &ast.Return{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: value}
}

func (p *Parser) parseExit() ast.Statement {
	tok := p.advance()
	e := &ast.Exit{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
	if !p.check(token.NEWLINE) && !p.atEOF() {
		e.Code = p.parseExpression()
		p.match(token.COMMA)
		if !p.check(token.NEWLINE) && !p.atEOF() {
			e.Message = p.parseExpression()
		}
	}
	return e
}

func (p *Parser) parseLog() ast.Statement {
	tok := p.advance()
	value := p.parseExpression()
	return &ast.Log{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: value}
}
