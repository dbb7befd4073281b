package builtin_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

const petSpec = `openapi: 3.0.0
info:
  title: Pet Store
  version: "1.0"
paths:
  /pets/{id}:
    get:
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
  /pets:
    post:
      operationId: createPet
      responses:
        "201":
          description: created
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petSpec), 0644))
	return path
}

func TestLoadResourceIndexesOperationsByID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"42"}`))
	}))
	defer server.Close()

	r, err := builtin.LoadResource(writeSpec(t), server.URL, server.Client())
	require.NoError(t, err)
	assert.Equal(t, "Pet Store", r.Describe())

	args := value.NewDict()
	args.Set("id", value.String("42"))
	v, err := r.Invoke("getPet", []value.Value{value.DictOf(args)}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/pets/42", gotPath)
	status, _ := v.AsDict().Get("status")
	assert.Equal(t, int64(http.StatusOK), status.AsInt())
}

func TestResourceInvokeUnknownOperationIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	r, err := builtin.LoadResource(writeSpec(t), server.URL, server.Client())
	require.NoError(t, err)

	_, err = r.Invoke("deletePet", nil, nil)
	require.Error(t, err)
}

func TestResourceInvokePassesExtraArgsAsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	r, err := builtin.LoadResource(writeSpec(t), server.URL, server.Client())
	require.NoError(t, err)

	args := value.NewDict()
	args.Set("tag", value.String("friendly"))
	_, err = r.Invoke("createPet", []value.Value{value.DictOf(args)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "tag=friendly", gotQuery)
}
