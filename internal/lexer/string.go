package lexer

import (
	"strings"

	"github.com/flowbylang/flowby/internal/token"
)

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'0':  0,
}

// scanString consumes a single- or double-quoted string literal starting at
// the opening quote (not yet consumed). The decoded value is stored as the
// token lexeme; escape handling mirrors common Python-family semantics.
func (l *Lexer) scanString(pos token.Position, quote rune) {
	l.advance() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.fail(pos, "unterminated string literal")
			break
		}
		if l.ch == quote {
			l.advance()
			break
		}
		if l.ch == '\\' {
			l.advance()
			if r, ok := simpleEscapes[l.ch]; ok {
				sb.WriteRune(r)
				l.advance()
				continue
			}
			l.fail(l.here(), "invalid escape sequence \\"+string(l.ch))
			sb.WriteRune(l.ch)
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.emit(token.STRING, sb.String(), pos)
}

// scanFString consumes an f-string, splitting it into alternating literal
// and `{expr}` chunks. Each chunk is emitted as its own token so the parser
// can lex-then-parse the expression fragments as real sub-expressions;
// FSTRING_START/MID/END carry the decoded literal text, and the parser
// re-enters the lexer/parser pair on the raw text between matching braces
// for each expression fragment.
func (l *Lexer) scanFString(pos token.Position, quote rune) {
	l.advance() // consume opening quote
	var sb strings.Builder
	first := true
	emitChunk := func(isLast bool) {
		typ := token.FSTRING_MID
		if first {
			typ = token.FSTRING_START
		}
		if isLast {
			if first {
				typ = token.STRING // f"literal only" behaves like a plain string chunk-wise
			} else {
				typ = token.FSTRING_END
			}
		}
		l.emit(typ, sb.String(), pos)
		sb.Reset()
		first = false
	}
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.fail(pos, "unterminated f-string literal")
			emitChunk(true)
			return
		}
		if l.ch == quote {
			l.advance()
			emitChunk(true)
			return
		}
		if l.ch == '\\' {
			l.advance()
			if r, ok := simpleEscapes[l.ch]; ok {
				sb.WriteRune(r)
				l.advance()
				continue
			}
			sb.WriteRune(l.ch)
			l.advance()
			continue
		}
		if l.ch == '{' {
			if l.peekByte() == '{' {
				sb.WriteRune('{')
				l.advance()
				l.advance()
				continue
			}
			emitChunk(false)
			l.scanFStringExpr()
			continue
		}
		if l.ch == '}' && l.peekByte() == '}' {
			sb.WriteRune('}')
			l.advance()
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
}

// scanFStringExpr consumes `{ ... }`, tracking nested braces, and emits the
// raw interior text as a single IDENT-less pseudo token the parser
// re-lexes; brace depth is tracked so nested object/dict literals inside an
// f-string expression are not mistaken for the closing brace.
func (l *Lexer) scanFStringExpr() {
	pos := l.here()
	l.advance() // consume '{'
	depth := 1
	start := l.pos
	for depth > 0 {
		if l.ch == 0 || l.ch == '\n' {
			l.fail(pos, "unterminated f-string expression")
			break
		}
		if l.ch == '{' {
			depth++
		} else if l.ch == '}' {
			depth--
			if depth == 0 {
				break
			}
		}
		l.advance()
	}
	expr := l.input[start:l.pos]
	l.emit(token.FSTRING_EXPR, expr, pos)
	if l.ch == '}' {
		l.advance()
	}
}
