package parser

import (
	"strconv"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

// parseExpression is the grammar's single entry point. Precedence, low to
// high: conditional, or, and, not, comparison, additive, multiplicative,
// unary, postfix, primary.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseConditional()
}

// parseConditional handles the ternary `THEN if COND else ELSE` form, which
// binds looser than everything else so `a if b else c if d else e` parses
// right-associatively.
func (p *Parser) parseConditional() ast.Expression {
	then := p.parseOr()
	if p.check(token.IF) {
		tok := p.advance()
		cond := p.parseOr()
		p.expect(token.ELSE, "in conditional expression")
		elseExpr := p.parseConditional()
		return &ast.Conditional{NodeBase: ast.At(tok.Pos, tok.Lexeme), Cond: cond, Then: then, Else: elseExpr}
	}
	return then
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(token.OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Left: left, Right: right, Operator: "or"}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.check(token.AND) {
		tok := p.advance()
		right := p.parseNot()
		left = &ast.BinaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Left: left, Right: right, Operator: "and"}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.check(token.NOT) {
		tok := p.advance()
		operand := p.parseNot()
		return &ast.UnaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Operand: operand, Operator: "not"}
	}
	return p.parseComparison()
}

// parseComparison is non-associative: `a < b < c` is a parse error rather
// than a chained three-way comparison.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	if !p.atComparisonOp() {
		return left
	}
	tok := p.advance()
	right := p.parseAdditive()
	if p.atComparisonOp() {
		p.violationKey(errors.ParseError, p.cur().Pos, "parse.chained_comparison")
		p.advance()
		p.parseAdditive()
	}
	return &ast.BinaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Left: left, Right: right, Operator: tok.Lexeme}
}

func (p *Parser) atComparisonOp() bool {
	switch p.cur().Type {
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		return true
	}
	return false
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Left: left, Right: right, Operator: tok.Lexeme}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		tok := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Left: left, Right: right, Operator: tok.Lexeme}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.MINUS) || p.check(token.PLUS) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{NodeBase: ast.At(tok.Pos, tok.Lexeme), Operand: operand, Operator: tok.Lexeme}
	}
	return p.parsePostfix()
}

// parsePostfix handles chained member access, indexing, and calls:
// `a.b[c].d(e, f)`.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(token.DOT):
			tok := p.advance()
			name := p.expect(token.IDENT, "after '.'").Lexeme
			if p.check(token.LPAREN) {
				args, kwargs := p.parseArgList()
				expr = &ast.MethodCall{NodeBase: ast.At(tok.Pos, tok.Lexeme), Target: expr, Method: name, Args: args, Kwargs: kwargs}
			} else {
				expr = &ast.MemberAccess{NodeBase: ast.At(tok.Pos, tok.Lexeme), Target: expr, Name: name}
			}
		case p.check(token.LBRACKET):
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET, "to close index expression")
			expr = &ast.IndexAccess{NodeBase: ast.At(tok.Pos, tok.Lexeme), Target: expr, Index: idx}
		case p.check(token.LPAREN):
			tok := p.cur()
			args, kwargs := p.parseArgList()
			expr = &ast.Call{NodeBase: ast.At(tok.Pos, tok.Lexeme), Callee: expr, Args: args, Kwargs: kwargs}
		default:
			return expr
		}
	}
}

// parseArgList parses a parenthesized, comma-separated argument list,
// splitting positional args from `name=value` keyword args.
func (p *Parser) parseArgList() ([]ast.Expression, map[string]ast.Expression) {
	p.expect(token.LPAREN, "to begin argument list")
	var args []ast.Expression
	var kwargs map[string]ast.Expression
	for !p.check(token.RPAREN) && !p.atEOF() {
		if p.check(token.IDENT) && p.peekNext().Type == token.ASSIGN {
			name := p.advance().Lexeme
			p.advance() // '='
			val := p.parseExpression()
			if kwargs == nil {
				kwargs = make(map[string]ast.Expression)
			}
			kwargs[name] = val
		} else {
			args = append(args, p.parseExpression())
		}
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA, "between arguments")
		}
	}
	p.expect(token.RPAREN, "to close argument list")
	return args, kwargs
}

// parsePrimary parses literals, identifiers, parenthesized/lambda
// expressions, f-strings, and collection literals.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: n}
	case token.FLOAT:
		p.advance()
		f, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: f}
	case token.STRING:
		p.advance()
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: tok.Lexeme}
	case token.TRUE:
		p.advance()
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: false}
	case token.NONE:
		p.advance()
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: nil}
	case token.FSTRING_START:
		return p.parseFString()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LPAREN:
		if p.isLambdaAhead() {
			return p.parseLambda()
		}
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN, "to close parenthesized expression")
		return inner
	case token.IDENT:
		if p.peekNext().Type == token.ARROW {
			return p.parseLambda()
		}
		if tok.Lexeme == "input" && p.peekNext().Type == token.LPAREN {
			return p.parseInput()
		}
		p.advance()
		if !p.symbols.Exists(tok.Lexeme) {
			p.violationKey(errors.SemanticError, tok.Pos, "semantic.undefined_variable", tok.Lexeme)
		}
		return &ast.Identifier{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: tok.Lexeme}
	default:
		p.addViolation(errors.ParseError, tok.Pos, "unexpected token %s %q in expression", tok.Type, tok.Lexeme)
		p.advance()
		return &ast.Literal{NodeBase: ast.At(tok.Pos, tok.Lexeme), Value: nil}
	}
}

// isLambdaAhead scans a balanced `( ... )` group starting at the current
// LPAREN and reports whether it is immediately followed by `=>`, without
// consuming any tokens.
func (p *Parser) isLambdaAhead() bool {
	depth := 0
	for i := p.pos; ; i++ {
		if i >= len(p.tokens) {
			return false
		}
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				next := i + 1
				return next < len(p.tokens) && p.tokens[next].Type == token.ARROW
			}
		case token.EOF, token.NEWLINE:
			return false
		}
	}
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.cur()
	var params []string
	if p.check(token.LPAREN) {
		p.advance()
		for !p.check(token.RPAREN) && !p.atEOF() {
			params = append(params, p.expect(token.IDENT, "as lambda parameter").Lexeme)
			if !p.check(token.RPAREN) {
				p.expect(token.COMMA, "between lambda parameters")
			}
		}
		p.expect(token.RPAREN, "to close lambda parameter list")
	} else {
		params = append(params, p.expect(token.IDENT, "as lambda parameter").Lexeme)
	}
	p.expect(token.ARROW, "in lambda expression")

	p.symbols.Push()
	for _, param := range params {
		p.symbols.Define(param, semantic.KindParameter, tok.Pos.Line)
	}
	body := p.parseExpression()
	p.symbols.Pop()

	return &ast.Lambda{NodeBase: ast.At(tok.Pos, tok.Lexeme), Params: params, Body: body}
}

// parseInput recognizes `input(prompt, default=..., type="int")`
// specially, since it is the one interactive suspension point the
// interpreter must special-case.
func (p *Parser) parseInput() ast.Expression {
	tok := p.advance() // 'input'
	p.expect(token.LPAREN, "to begin input() call")
	in := &ast.Input{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
	if !p.check(token.RPAREN) {
		in.Prompt = p.parseExpression()
	}
	for p.check(token.COMMA) {
		p.advance()
		var name string
		if p.check(token.TYPE_ACTION) {
			// `type` is an action keyword everywhere else in the grammar
			name = p.advance().Lexeme
		} else {
			name = p.expect(token.IDENT, "as input() keyword argument").Lexeme
		}
		p.expect(token.ASSIGN, "in input() keyword argument")
		switch name {
		case "default":
			in.Default = p.parseExpression()
		case "type":
			if lit, ok := p.parseExpression().(*ast.Literal); ok {
				if s, ok := lit.Value.(string); ok {
					in.Type = s
				}
			}
		default:
			p.parseExpression() // consume and ignore unknown kwargs
		}
	}
	p.expect(token.RPAREN, "to close input() call")
	return in
}

func (p *Parser) parseFString() ast.Expression {
	tok := p.advance() // FSTRING_START
	f := &ast.FStringTemplate{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
	f.Literals = append(f.Literals, tok.Lexeme)
	for {
		switch p.cur().Type {
		case token.FSTRING_EXPR:
			exprTok := p.advance()
			f.Exprs = append(f.Exprs, p.parseFStringFragment(exprTok))
		case token.FSTRING_MID:
			f.Literals = append(f.Literals, p.advance().Lexeme)
		case token.FSTRING_END:
			f.Literals = append(f.Literals, p.advance().Lexeme)
			return f
		default:
			p.addViolation(errors.ParseError, p.cur().Pos, "unterminated f-string")
			return f
		}
	}
}

// parseFStringFragment re-lexes and parses the raw text of one `{expr}`
// f-string fragment as an independent expression; fragments are captured
// raw at lex time and only become AST here.
// "expression fragments are lexed at lex time but parsed at parse time"
// requirement.
func (p *Parser) parseFStringFragment(exprTok token.Token) ast.Expression {
	sub := New(exprTok.Lexeme, p.origin)
	sub.symbols = p.symbols
	expr := sub.parseExpression()
	for _, v := range sub.violations {
		p.violations = append(p.violations, v)
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	arr := &ast.ArrayLiteral{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
	p.skipNewlines()
	for !p.check(token.RBRACKET) && !p.atEOF() {
		arr.Elements = append(arr.Elements, p.parseExpression())
		p.skipNewlines()
		if !p.check(token.RBRACKET) {
			p.expect(token.COMMA, "between array elements")
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACKET, "to close array literal")
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.advance() // '{'
	obj := &ast.ObjectLiteral{NodeBase: ast.At(tok.Pos, tok.Lexeme)}
	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.atEOF() {
		var key string
		switch p.cur().Type {
		case token.STRING, token.IDENT:
			key = p.advance().Lexeme
		default:
			key = p.expect(token.IDENT, "as object key").Lexeme
		}
		p.expect(token.COLON, "after object key")
		val := p.parseExpression()
		obj.Entries = append(obj.Entries, ast.ObjectEntry{Key: key, Value: val})
		p.skipNewlines()
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA, "between object entries")
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACE, "to close object literal")
	return obj
}
