package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/value"
)

func TestLoggingHostRecordsEveryCall(t *testing.T) {
	h := action.NewLoggingHost()

	_, err := h.Do("navigate", []value.Value{value.String("https://example.com")}, nil)
	require.NoError(t, err)

	_, err = h.Do("click", nil, map[string]value.Value{"selector": value.String("#btn")})
	require.NoError(t, err)

	require.Len(t, h.Calls, 2)
	assert.Equal(t, "navigate", h.Calls[0].Kind)
	assert.Equal(t, "https://example.com", h.Calls[0].Args[0].AsString())
	assert.Equal(t, "click", h.Calls[1].Kind)
	assert.Equal(t, "#btn", h.Calls[1].Kwargs["selector"].AsString())
}

func TestLoggingHostExtractReturnsAnEmptyString(t *testing.T) {
	h := action.NewLoggingHost()
	v, err := h.Do("extract", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, value.KindString, v.Kind())
	assert.Equal(t, "", v.AsString())
}

func TestLoggingHostCheckReturnsTrue(t *testing.T) {
	h := action.NewLoggingHost()
	v, err := h.Do("check", nil, nil)
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestLoggingHostOtherKindsReturnNone(t *testing.T) {
	h := action.NewLoggingHost()
	v, err := h.Do("wait", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, value.KindNone, v.Kind())
}
