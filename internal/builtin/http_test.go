package builtin_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

func TestHTTPGetReturnsStatusHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	ns := builtin.NewHTTPNamespace()
	v, err := ns.Invoke("get", []value.Value{value.String(server.URL)}, nil)
	require.NoError(t, err)
	require.Equal(t, value.KindDict, v.Kind())

	status, ok := v.AsDict().Get("status")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusTeapot), status.AsInt())

	body, ok := v.AsDict().Get("body")
	require.True(t, ok)
	assert.Equal(t, "hello", body.AsString())

	headers, ok := v.AsDict().Get("headers")
	require.True(t, ok)
	h, ok := headers.AsDict().Get("X-Test")
	require.True(t, ok)
	assert.Equal(t, "yes", h.AsString())
}

func TestHTTPPostSendsBodyAndHeaders(t *testing.T) {
	var gotBody string
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotHeader = r.Header.Get("X-Api-Key")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	ns := builtin.NewHTTPNamespace()
	headers := value.NewDict()
	headers.Set("X-Api-Key", value.String("secret"))

	v, err := ns.Invoke("post", []value.Value{value.String(server.URL)}, map[string]value.Value{
		"body":    value.String(`{"ok":true}`),
		"headers": value.DictOf(headers),
	})
	require.NoError(t, err)

	status, _ := v.AsDict().Get("status")
	assert.Equal(t, int64(http.StatusCreated), status.AsInt())
	assert.Equal(t, `{"ok":true}`, gotBody)
	assert.Equal(t, "secret", gotHeader)
}

func TestHTTPGetRejectsNonStringURL(t *testing.T) {
	ns := builtin.NewHTTPNamespace()
	_, err := ns.Invoke("get", []value.Value{value.Int(1)}, nil)
	require.Error(t, err)
}

func TestHTTPUnknownVerbIsAnError(t *testing.T) {
	ns := builtin.NewHTTPNamespace()
	_, err := ns.Invoke("patch", []value.Value{value.String("http://example.com")}, nil)
	require.Error(t, err)
}
