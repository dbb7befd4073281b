package parser

import (
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

// parseLibraryDecl parses `library name`, the declaration that marks a file
// as importable rather than runnable.
func (p *Parser) parseLibraryDecl() ast.Statement {
	tok := p.advance()
	name := p.expect(token.IDENT, "after library").Lexeme
	if p.librarySeen {
		p.addViolation(errors.SemanticError, tok.Pos, "duplicate library declaration")
	}
	p.librarySeen = true
	p.isLibraryFile = true
	p.libraryName = name
	p.symbols.Define(name, semantic.KindLibrary, tok.Pos.Line)
	return &ast.LibraryDecl{NodeBase: ast.At(tok.Pos, tok.Lexeme), Name: name}
}

// parseExport wraps exactly one const or function declaration.
// Anything else is a parse error.
func (p *Parser) parseExport() ast.Statement {
	tok := p.advance()
	var inner ast.Statement
	switch p.cur().Type {
	case token.CONST:
		inner = p.parseConstDecl()
	case token.FUNCTION:
		inner = p.parseFunctionDef()
	default:
		p.addViolation(errors.ParseError, tok.Pos, "export must wrap a const or function declaration")
		inner = p.parseStatement()
	}
	return &ast.ExportDecl{NodeBase: ast.At(tok.Pos, tok.Lexeme), Inner: inner}
}

// parseImportAll parses `import Alias from "path"`.
func (p *Parser) parseImportAll() ast.Statement {
	tok := p.advance()
	alias := p.expect(token.IDENT, "as import alias").Lexeme
	p.expect(token.FROM, "in import statement")
	path := p.expect(token.STRING, "as import path").Lexeme
	p.symbols.Define(alias, semantic.KindImport, tok.Pos.Line)
	return &ast.ImportAll{NodeBase: ast.At(tok.Pos, tok.Lexeme), Alias: alias, Path: path}
}

// parseImportMembers parses `from "path" import N1, N2, ...`.
func (p *Parser) parseImportMembers() ast.Statement {
	tok := p.advance()
	path := p.expect(token.STRING, "as import path").Lexeme
	p.expect(token.IMPORT, "in from-import statement")
	var names []string
	for {
		name := p.expect(token.IDENT, "as imported member name").Lexeme
		names = append(names, name)
		p.symbols.Define(name, semantic.KindImport, tok.Pos.Line)
		if !p.check(token.COMMA) {
			break
		}
		p.advance()
	}
	return &ast.ImportMembers{NodeBase: ast.At(tok.Pos, tok.Lexeme), Path: path, Names: names}
}
