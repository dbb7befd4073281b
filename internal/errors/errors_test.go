package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/token"
)

func TestFormatIncludesOriginLineAndCaret(t *testing.T) {
	src := "let x = 1\nlet y = oops\n"
	e := errors.New(errors.SemanticError,
		token.Position{Origin: "main.flow", Line: 2, Column: 9},
		"undefined variable %q", "oops")

	out := e.Format(src, false)
	assert.Contains(t, out, "SemanticError: main.flow:2:9:")
	assert.Contains(t, out, "let y = oops")
	assert.Contains(t, out, "^")
}

func TestFormatWithoutSourceSkipsTheCaretLine(t *testing.T) {
	e := errors.New(errors.RuntimeError, token.Position{Line: 3, Column: 1}, "boom")
	out := e.Format("", false)
	assert.Contains(t, out, "RuntimeError: line 3:1: boom")
	assert.NotContains(t, out, "^")
}

func TestFormatRendersCallFrames(t *testing.T) {
	e := errors.New(errors.RuntimeError, token.Position{Line: 7}, "boom")
	e.Frames = []errors.Frame{
		{FunctionName: "inner", Line: 7},
		{FunctionName: "outer", Line: 12},
	}
	out := e.Format("", false)
	assert.Contains(t, out, "at inner (line 7)")
	assert.Contains(t, out, "at outer (line 12)")
}

func TestNewKeyedKeepsTheCanonicalKey(t *testing.T) {
	e := errors.NewKeyed(errors.ModuleError, token.Position{Line: 1}, "module.not_found", "library file not found in any search path: x")
	assert.Equal(t, "module.not_found", e.Key)
	assert.Contains(t, e.Error(), "not found")
}

func TestExitOutcomeConstructors(t *testing.T) {
	done := errors.Completed()
	require.True(t, done.Completed)
	assert.Zero(t, done.Code)

	failed := errors.Failed(4, "bad state")
	require.False(t, failed.Completed)
	assert.Equal(t, 4, failed.Code)
	assert.Equal(t, "bad state", failed.Message)
}
