// Package parser implements Flowby's recursive-descent parser:
// TokenStream → AST, threading a SymbolTable and a loop-depth counter so
// scope and use-before-declaration checks happen while parsing. One file
// per grammar area, one token of lookahead, except that isLambdaAhead
// scans a whole parenthesized group to tell a lambda from a parenthesized
// expression.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/i18n"
	"github.com/flowbylang/flowby/internal/lexer"
	"github.com/flowbylang/flowby/internal/semantic"
	"github.com/flowbylang/flowby/internal/token"
)

// Parser consumes a token stream and produces a Program plus any
// accumulated semantic violations.
type Parser struct {
	tokens []token.Token
	pos    int
	origin string
	source string

	symbols   *semantic.Table
	messages  i18n.Resolver
	loopDepth int
	funcDepth int

	allowNestedFunctions bool

	isLibraryFile  bool
	librarySeen    bool
	libraryName    string
	sawNonLibraryStmt bool

	violations []*errors.FlowbyError
}

// New builds a Parser over src, lexing it first. Lex errors are surfaced
// through Violations() too, so callers only need to check one list.
func New(src, origin string) *Parser {
	l := lexer.New(src, origin)
	toks := l.Tokenize()
	p := &Parser{
		tokens:   toks,
		origin:   origin,
		source:   src,
		symbols:  semantic.New(),
		messages: i18n.Default(),
	}
	for _, lerr := range l.Errors() {
		p.violations = append(p.violations, errors.New(errors.LexError, lerr.Pos, "%s", lerr.Msg))
	}
	return p
}

// ParseProgram parses the whole token stream into a Program. Check
// Violations() afterward: a nonempty list means the parse as a whole
// failed.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEOF() {
		p.skipNewlines()
		if p.atEOF() {
			break
		}
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if p.librarySeen && p.libraryName != "" {
		stem := strings.TrimSuffix(filepath.Base(p.origin), filepath.Ext(p.origin))
		if stem != "" && stem != p.libraryName {
			p.violationKey(errors.SemanticError, p.tokens[0].Pos,
				"semantic.library_name_mismatch", p.libraryName, stem)
		}
	}
	return prog
}

// Violations returns every accumulated lex/parse/semantic error in the
// order recorded: lex errors first, then parse and semantic errors as the
// parser meets them, with the library-name check last.
func (p *Parser) Violations() []*errors.FlowbyError { return p.violations }

func (p *Parser) addViolation(kind errors.Kind, pos token.Position, format string, args ...any) {
	p.violations = append(p.violations, errors.New(kind, pos, format, args...))
}

// violationKey records a violation rendered from a canonical i18n message
// key.
func (p *Parser) violationKey(kind errors.Kind, pos token.Position, key string, args ...any) {
	p.violations = append(p.violations, errors.NewKeyed(kind, pos, key, p.messages.Resolve(key, args...)))
}

// SetMessages replaces the default English message resolver, for hosts
// that localize diagnostics.
func (p *Parser) SetMessages(r i18n.Resolver) {
	if r != nil {
		p.messages = r
	}
}

// RegisterHostName marks name as always defined for this parse, so
// host-injected globals pass the use-before-declaration check. The
// registration is scoped to this Parser's symbol table.
func (p *Parser) RegisterHostName(name string) {
	p.symbols.RegisterHostName(name)
}

// SetAllowNestedFunctions permits `function` definitions inside another
// function's body. The default rejects them; closures over enclosing
// locals then require the lambda form.
func (p *Parser) SetAllowNestedFunctions(allow bool) {
	p.allowNestedFunctions = allow
}

// --- token cursor -----------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) peekNext() token.Token { return p.peekAt(1) }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t token.Type, context string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	tok := p.cur()
	p.addViolation(errors.ParseError, tok.Pos, "expected %s %s, got %s %q", t, context, tok.Type, tok.Lexeme)
	return tok
}

func (p *Parser) atEOF() bool { return p.cur().Type == token.EOF }

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// parseBlock consumes `:` NEWLINE INDENT statement+ DEDENT.
func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.COLON, "before block")
	p.skipNewlines()
	if !p.match(token.INDENT) {
		p.addViolation(errors.ParseError, p.cur().Pos, "expected an indented block")
		return nil
	}
	var stmts []ast.Statement
	for !p.check(token.DEDENT) && !p.atEOF() {
		p.skipNewlines()
		if p.check(token.DEDENT) || p.atEOF() {
			break
		}
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close block")
	return stmts
}
