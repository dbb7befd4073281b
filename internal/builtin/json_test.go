package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

func TestJSONParseObjectIntoADict(t *testing.T) {
	ns := builtin.JSONNamespace{}
	v, err := ns.Invoke("parse", []value.Value{value.String(`{"name":"ada","age":36}`)}, nil)
	require.NoError(t, err)
	require.Equal(t, value.KindDict, v.Kind())

	name, ok := v.AsDict().Get("name")
	require.True(t, ok)
	assert.Equal(t, "ada", name.AsString())

	age, ok := v.AsDict().Get("age")
	require.True(t, ok)
	assert.Equal(t, int64(36), age.AsInt())
}

func TestJSONParseInvalidJSONIsAnError(t *testing.T) {
	_, err := builtin.JSONNamespace{}.Invoke("parse", []value.Value{value.String(`{not json`)}, nil)
	require.Error(t, err)
}

func TestJSONStringifyRoundTrips(t *testing.T) {
	ns := builtin.JSONNamespace{}
	d := value.NewDict()
	d.Set("x", value.Int(1))
	out, err := ns.Invoke("stringify", []value.Value{value.DictOf(d)}, nil)
	require.NoError(t, err)

	parsed, err := ns.Invoke("parse", []value.Value{out}, nil)
	require.NoError(t, err)
	x, ok := parsed.AsDict().Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), x.AsInt())
}

func TestJSONGetByPath(t *testing.T) {
	ns := builtin.JSONNamespace{}
	v, err := ns.Invoke("get", []value.Value{
		value.String(`{"user":{"name":"ada"}}`),
		value.String("user.name"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ada", v.AsString())
}

func TestJSONSetByPath(t *testing.T) {
	ns := builtin.JSONNamespace{}
	out, err := ns.Invoke("set", []value.Value{
		value.String(`{"user":{"name":"ada"}}`),
		value.String("user.name"),
		value.String("grace"),
	}, nil)
	require.NoError(t, err)

	v, err := ns.Invoke("get", []value.Value{out, value.String("user.name")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "grace", v.AsString())
}

func TestJSONStringifyEscapesControlCharacters(t *testing.T) {
	ns := builtin.JSONNamespace{}
	d := value.NewDict()
	d.Set("noisy", value.String("bell\x07tab\tvt\x0bdone"))

	out, err := ns.Invoke("stringify", []value.Value{value.DictOf(d)}, nil)
	require.NoError(t, err)
	assert.True(t, gjson.Valid(out.AsString()), "stringify output must be valid JSON: %s", out.AsString())

	back, err := ns.Invoke("parse", []value.Value{out}, nil)
	require.NoError(t, err)
	got, ok := back.AsDict().Get("noisy")
	require.True(t, ok)
	assert.Equal(t, "bell\x07tab\tvt\x0bdone", got.AsString())
}
