package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

func TestUtilOrdAndChrRoundTrip(t *testing.T) {
	ns := builtin.UtilNamespace{}

	code, err := ns.Invoke("ord", []value.Value{value.String("A")}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64('A'), code.AsInt())

	ch, err := ns.Invoke("chr", []value.Value{value.Int(65)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", ch.AsString())
}

func TestUtilPadLeftAndPadRight(t *testing.T) {
	ns := builtin.UtilNamespace{}

	left, err := ns.Invoke("padLeft", []value.Value{value.String("7"), value.Int(3), value.String("0")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "007", left.AsString())

	right, err := ns.Invoke("padRight", []value.Value{value.String("7"), value.Int(3), value.String("0")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "700", right.AsString())
}

func TestUtilRepeat(t *testing.T) {
	v, err := builtin.UtilNamespace{}.Invoke("repeat", []value.Value{value.String("ab"), value.Int(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ababab", v.AsString())
}

func TestUtilSlugify(t *testing.T) {
	v, err := builtin.UtilNamespace{}.Invoke("slugify", []value.Value{value.String("Hello, World!  Go Rocks")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-go-rocks", v.AsString())
}

func TestUtilOrdRejectsEmptyString(t *testing.T) {
	_, err := builtin.UtilNamespace{}.Invoke("ord", []value.Value{value.String("")}, nil)
	require.Error(t, err)
}
