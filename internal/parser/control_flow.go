package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

func (p *Parser) parseIf() ast.Statement {
	tok := p.advance()
	cond := p.parseExpression()
	then := p.parseBlock()
	var elseBody []ast.Statement
	p.skipNewlines()
	if p.check(token.ELSE) {
		// `else if` chains naturally since an If is itself a Statement.
		peekIsIf := p.peekNext().Type == token.IF
		p.advance()
		if peekIsIf {
			elseBody = []ast.Statement{p.parseIf()}
		} else {
			elseBody = p.parseBlock()
		}
	}
	return &ast.If{NodeBase: ast.At(tok.Pos, tok.Lexeme), Cond: cond, Then: then, Else: elseBody}
}

// parseWhen parses `when EXPR: CASE: ... otherwise: ...`.
func (p *Parser) parseWhen() ast.Statement {
	tok := p.advance()
	subject := p.parseExpression()
	p.expect(token.COLON, "after when subject")
	p.skipNewlines()
	p.expect(token.INDENT, "to open when body")

	var cases []ast.WhenCase
	for !p.check(token.DEDENT) && !p.atEOF() {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		var c ast.WhenCase
		if p.check(token.OTHERWISE) {
			p.advance()
			c.Otherwise = true
		} else {
			c.Values = append(c.Values, p.parseExpression())
			for p.check(token.OR) {
				p.advance()
				c.Values = append(c.Values, p.parseExpression())
			}
		}
		c.Body = p.parseBlock()
		cases = append(cases, c)
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close when body")
	return &ast.When{NodeBase: ast.At(tok.Pos, tok.Lexeme), Subject: subject, Cases: cases}
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.advance()
	var vars []string
	vars = append(vars, p.expect(token.IDENT, "as loop variable").Lexeme)
	for p.check(token.COMMA) {
		p.advance()
		vars = append(vars, p.expect(token.IDENT, "as loop variable").Lexeme)
	}
	p.expect(token.IN, "in for statement")
	iterable := p.parseExpression()

	p.symbols.Push()
	for _, v := range vars {
		p.symbols.Define(v, semantic.KindVariable, tok.Pos.Line)
	}
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	p.symbols.Pop()

	return &ast.For{NodeBase: ast.At(tok.Pos, tok.Lexeme), Vars: vars, Iterable: iterable, Body: body}
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance()
	cond := p.parseExpression()
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	return &ast.While{NodeBase: ast.At(tok.Pos, tok.Lexeme), Cond: cond, Body: body}
}

func (p *Parser) parseBreak() ast.Statement {
	tok := p.advance()
	if p.loopDepth <= 0 {
		p.violationKey(errors.SemanticError, tok.Pos, "semantic.break_outside_loop")
	}
	return &ast.Break{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
}

func (p *Parser) parseContinue() ast.Statement {
	tok := p.advance()
	if p.loopDepth <= 0 {
		p.violationKey(errors.SemanticError, tok.Pos, "semantic.continue_outside_loop")
	}
	return &ast.Continue{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
}

func (p *Parser) parseStep() ast.Statement {
	tok := p.advance()
	label := p.expect(token.STRING, "as step label").Lexeme
	body := p.parseBlock()
	return &ast.Step{NodeBase: ast.At(tok.Pos, tok.Lexeme), Label: label, Body: body}
}
