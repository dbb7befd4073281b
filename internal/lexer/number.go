package lexer

import (
	"unicode"

	"github.com/flowbylang/flowby/internal/token"
)

// scanNumber consumes an integer or floating-point literal, with optional
// scientific notation.
func (l *Lexer) scanNumber(pos token.Position) {
	start := l.pos
	isFloat := false

	for unicode.IsDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekByte()) {
		isFloat = true
		l.advance()
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		save := l.pos
		saveRead, saveCol := l.readPos, l.column
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		if unicode.IsDigit(l.ch) {
			isFloat = true
			for unicode.IsDigit(l.ch) {
				l.advance()
			}
		} else {
			// not actually an exponent; rewind
			l.pos, l.readPos, l.column = save, saveRead, saveCol
			l.ch = rune(l.input[save])
		}
	}

	lit := l.input[start:l.pos]
	if isFloat {
		l.emit(token.FLOAT, lit, pos)
	} else {
		l.emit(token.INT, lit, pos)
	}
}
