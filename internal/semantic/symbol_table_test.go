package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/semantic"
)

func TestDefineAndLookupWalkTheFrameStack(t *testing.T) {
	tbl := semantic.New()
	require.True(t, tbl.Define("x", semantic.KindVariable, 1))

	tbl.Push()
	require.True(t, tbl.Define("y", semantic.KindVariable, 2))

	sym, ok := tbl.Lookup("x")
	require.True(t, ok, "outer frames remain visible from inner scopes")
	assert.Equal(t, 1, sym.DefinedLine)

	tbl.Pop()
	_, ok = tbl.Lookup("y")
	assert.False(t, ok, "popping a frame drops its bindings")
}

func TestDuplicateDefinitionInTheSameFrameIsRejected(t *testing.T) {
	tbl := semantic.New()
	require.True(t, tbl.Define("x", semantic.KindVariable, 1))
	assert.False(t, tbl.Define("x", semantic.KindVariable, 2))
}

func TestInnerFrameMayShadowAnOuterName(t *testing.T) {
	tbl := semantic.New()
	require.True(t, tbl.Define("x", semantic.KindVariable, 1))
	tbl.Push()
	assert.True(t, tbl.Define("x", semantic.KindParameter, 5))
}

func TestConstnessIsVisibleThroughTheWalk(t *testing.T) {
	tbl := semantic.New()
	require.True(t, tbl.Define("limit", semantic.KindConst, 1))
	tbl.Push()
	assert.True(t, tbl.IsConst("limit"))
	assert.False(t, tbl.IsConst("unknown"))
}

func TestBuiltinNamesAreAlwaysDefined(t *testing.T) {
	tbl := semantic.New()
	for _, name := range []string{"page", "env", "response", "Math", "len", "range", "Resource"} {
		assert.True(t, tbl.Exists(name), "%s should always resolve", name)
	}
	assert.True(t, tbl.IsBuiltin("len"))
	assert.False(t, tbl.IsBuiltin("myVar"))
}

func TestRegisterHostNameIsScopedToOneTable(t *testing.T) {
	tbl := semantic.New()
	require.False(t, tbl.IsBuiltin("customHelper"))

	tbl.RegisterHostName("customHelper")
	assert.True(t, tbl.IsBuiltin("customHelper"))
	assert.True(t, tbl.Exists("customHelper"))

	// a fresh table is unaffected: host names never leak process-wide
	other := semantic.New()
	assert.False(t, other.IsBuiltin("customHelper"))
	assert.False(t, other.Exists("customHelper"))
}
