package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

var actionKinds = map[token.Type]ast.ActionKind{
	token.NAVIGATE:   ast.ActionNavigate,
	token.CLICK:      ast.ActionClick,
	token.TYPE_ACTION: ast.ActionType,
	token.WAIT:       ast.ActionWait,
	token.ASSERT:     ast.ActionAssert,
	token.SCREENSHOT: ast.ActionScreenshot,
	token.SCROLL:     ast.ActionScroll,
	token.EXTRACT:    ast.ActionExtract,
	token.CHECK:      ast.ActionCheck,
	token.HOVER:      ast.ActionHover,
	token.UPLOAD:     ast.ActionUpload,
	token.SELECT:     ast.ActionSelect,
}

// parseAction parses one domain-action statement. Selectors, values, and
// all other arguments are full expressions,
// so f-strings and computed values work wherever a literal would. Actions
// take unparenthesized, whitespace-separated arguments: positional
// expressions first, then `name=value` keyword arguments, ending at
// NEWLINE. `extract ... into name` binds the extracted value into a new
// variable in the enclosing scope.
func (p *Parser) parseAction() ast.Statement {
	tok := p.advance()
	kind, ok := actionKinds[tok.Type]
	if !ok {
		p.addViolation(errors.ParseError, tok.Pos, "unrecognized action %q", tok.Lexeme)
	}
	act := &ast.Action{NodeBase: ast.At(tok.Pos, tok.Lexeme), Kind: kind}

	for !p.atActionBoundary() {
		if p.check(token.IDENT) && p.peekNext().Type == token.ASSIGN {
			name := p.advance().Lexeme
			p.advance() // '='
			if act.Kwargs == nil {
				act.Kwargs = make(map[string]ast.Expression)
			}
			act.Kwargs[name] = p.parseExpression()
			continue
		}
		if kind == ast.ActionExtract && p.check(token.INTO) {
			p.advance()
			name := p.expect(token.IDENT, "after into").Lexeme
			act.Into = name
			p.symbols.Define(name, semantic.KindVariable, tok.Pos.Line)
			continue
		}
		act.Args = append(act.Args, p.parseExpression())
	}
	return act
}

// atActionBoundary reports whether the cursor has reached the end of an
// action statement's argument list.
func (p *Parser) atActionBoundary() bool {
	switch p.cur().Type {
	case token.NEWLINE, token.EOF, token.DEDENT:
		return true
	default:
		return false
	}
}
