package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/lexer"
	"github.com/flowbylang/flowby/internal/token"
)

func kinds(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestIndentationProducesIndentDedent(t *testing.T) {
	src := "if x:\n    let y = 1\nlet z = 2\n"
	l := lexer.New(src, "test.flow")
	toks := l.Tokenize()
	require.Empty(t, l.Errors())

	got := kinds(toks)
	assert.Contains(t, got, token.INDENT)
	assert.Contains(t, got, token.DEDENT)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestInconsistentIndentationIsALexError(t *testing.T) {
	src := "if x:\n   let a = 1\n     let b = 2\n"
	l := lexer.New(src, "test.flow")
	l.Tokenize()
	assert.NotEmpty(t, l.Errors(), "indentation that is not a multiple of 4 spaces should be reported")
}

func TestFStringSplitsIntoStartMidEndAndExprFragments(t *testing.T) {
	src := `let s = f"hi {name}, you are {age} years old"` + "\n"
	l := lexer.New(src, "test.flow")
	toks := l.Tokenize()
	require.Empty(t, l.Errors())

	got := kinds(toks)
	assert.Contains(t, got, token.FSTRING_START)
	assert.Contains(t, got, token.FSTRING_MID)
	assert.Contains(t, got, token.FSTRING_END)

	var exprs []string
	for _, tk := range toks {
		if tk.Type == token.FSTRING_EXPR {
			exprs = append(exprs, tk.Lexeme)
		}
	}
	assert.Equal(t, []string{"name", "age"}, exprs)
}

func TestOperatorsAndPunctuation(t *testing.T) {
	src := "a => b == c != d <= e >= f\n"
	l := lexer.New(src, "test.flow")
	toks := l.Tokenize()
	require.Empty(t, l.Errors())

	got := kinds(toks)
	assert.Contains(t, got, token.ARROW)
	assert.Contains(t, got, token.EQ)
	assert.Contains(t, got, token.NEQ)
	assert.Contains(t, got, token.LE)
	assert.Contains(t, got, token.GE)
}

func TestKeywordsAreNotMistakenForIdentifiers(t *testing.T) {
	src := "while True:\n    break\n"
	l := lexer.New(src, "test.flow")
	toks := l.Tokenize()
	require.Empty(t, l.Errors())

	got := kinds(toks)
	assert.Contains(t, got, token.WHILE)
	assert.Contains(t, got, token.TRUE)
	assert.Contains(t, got, token.BREAK)
}
