package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/token"
)

// parseTopLevelStatement is parseStatement plus the library-file
// constraint check.
func (p *Parser) parseTopLevelStatement() ast.Statement {
	if p.check(token.LIBRARY) {
		if p.librarySeen || p.sawNonLibraryStmt {
			p.violationKey(errors.ParseError, p.cur().Pos, "parse.library_not_first")
		}
		return p.parseLibraryDecl()
	}
	p.sawNonLibraryStmt = true
	s := p.parseStatement()
	if p.isLibraryFile && s != nil {
		switch s.(type) {
		case *ast.ConstDecl, *ast.FunctionDef, *ast.ExportDecl, *ast.LetDecl,
			*ast.ImportAll, *ast.ImportMembers:
		default:
			p.violationKey(errors.SemanticError, tokenPos(s), "semantic.library_constraint")
		}
	}
	return s
}

func tokenPos(n ast.Node) token.Position {
	return token.Position{Line: n.Line()}
}

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LET:
		return p.parseLetDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.RESOURCE:
		return p.parseResourceDecl()
	case token.IF:
		return p.parseIf()
	case token.WHEN:
		return p.parseWhen()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.STEP:
		return p.parseStep()
	case token.FUNCTION:
		return p.parseFunctionDef()
	case token.RETURN:
		return p.parseReturn()
	case token.EXPORT:
		return p.parseExport()
	case token.IMPORT:
		return p.parseImportAll()
	case token.FROM:
		return p.parseImportMembers()
	case token.EXIT:
		return p.parseExit()
	case token.LOG:
		return p.parseLog()
	case token.NAVIGATE, token.CLICK, token.TYPE_ACTION, token.WAIT, token.ASSERT,
		token.SCREENSHOT, token.SCROLL, token.EXTRACT, token.CHECK, token.HOVER,
		token.UPLOAD, token.SELECT:
		return p.parseAction()
	default:
		return p.parseExprOrAssign()
	}
}

// parseExprOrAssign disambiguates a bare expression statement from an
// assignment by parsing the expression first, then checking for `=`.
func (p *Parser) parseExprOrAssign() ast.Statement {
	start := p.cur()
	expr := p.parseExpression()
	if expr == nil {
		p.advance()
		return nil
	}
	if p.check(token.ASSIGN) {
		return p.finishAssign(start, expr)
	}
	return &ast.ExprStatement{NodeBase: ast.At(start.Pos, start.Lexeme), Expr: expr}
}

func (p *Parser) finishAssign(start token.Token, target ast.Expression) ast.Statement {
	p.advance() // consume '='
	var at ast.AssignTarget
	switch t := target.(type) {
	case *ast.Identifier:
		if !p.symbols.Exists(t.Name) {
			p.violationKey(errors.SemanticError, start.Pos, "semantic.undefined_variable", t.Name)
		} else if p.symbols.IsConst(t.Name) {
			p.violationKey(errors.SemanticError, start.Pos, "semantic.const_reassignment", t.Name)
		}
		at.Identifier = t
	case *ast.MemberAccess:
		at.Member = t
	case *ast.IndexAccess:
		at.Index = t
	default:
		p.addViolation(errors.ParseError, start.Pos, "invalid assignment target")
	}
	value := p.parseExpression()
	return &ast.Assign{NodeBase: ast.At(start.Pos, start.Lexeme), Target: at, Value: value}
}
