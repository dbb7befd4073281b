package builtin_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

func TestEnvGetFallsBackToProcessEnvironment(t *testing.T) {
	t.Setenv("FLOWBY_TEST_VAR", "hello")

	ns, err := builtin.NewEnvNamespace("")
	require.NoError(t, err)

	v, err := ns.Invoke("get", []value.Value{value.String("FLOWBY_TEST_VAR")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", v.AsString())
}

func TestEnvGetWithDefaultWhenUnset(t *testing.T) {
	os.Unsetenv("FLOWBY_TEST_MISSING")
	ns, err := builtin.NewEnvNamespace("")
	require.NoError(t, err)

	v, err := ns.Invoke("get", []value.Value{value.String("FLOWBY_TEST_MISSING"), value.String("fallback")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", v.AsString())
}

func TestEnvHasReportsPresence(t *testing.T) {
	t.Setenv("FLOWBY_TEST_VAR2", "x")
	ns, err := builtin.NewEnvNamespace("")
	require.NoError(t, err)

	has, err := ns.Invoke("has", []value.Value{value.String("FLOWBY_TEST_VAR2")}, nil)
	require.NoError(t, err)
	assert.True(t, has.Truthy())

	missing, err := ns.Invoke("has", []value.Value{value.String("FLOWBY_DEFINITELY_NOT_SET")}, nil)
	require.NoError(t, err)
	assert.False(t, missing.Truthy())
}

func TestEnvLoadsDotfileValuesFirst(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/.env"
	require.NoError(t, os.WriteFile(path, []byte("GREETING=from_dotfile\n"), 0644))

	ns, err := builtin.NewEnvNamespace(path)
	require.NoError(t, err)

	v, err := ns.Invoke("get", []value.Value{value.String("GREETING")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_dotfile", v.AsString())
}
