package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/flowbylang/flowby/internal/value"
)

// ResourceObject is the runtime handle produced by the `Resource()`
// built-in: it loads an OpenAPI document with kin-openapi,
// validates it, and exposes each operationId as a callable method that
// dispatches over the same net/http client the `http` namespace uses.
type ResourceObject struct {
	doc     *openapi3.T
	base    string
	client  *http.Client
	byOpID  map[string]operationRef
}

type operationRef struct {
	method string
	path   string
	op     *openapi3.Operation
}

// LoadResource parses specPath as an OpenAPI document and returns a
// ResourceObject bound to baseURL (falling back to the document's first
// server entry when baseURL is empty).
func LoadResource(specPath, baseURL string, client *http.Client) (*ResourceObject, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document %s: %w", specPath, err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document %s: %w", specPath, err)
	}

	if baseURL == "" && len(doc.Servers) > 0 {
		baseURL = doc.Servers[0].URL
	}

	r := &ResourceObject{doc: doc, base: strings.TrimRight(baseURL, "/"), client: client, byOpID: map[string]operationRef{}}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			for method, op := range item.Operations() {
				if op.OperationID == "" {
					continue
				}
				r.byOpID[op.OperationID] = operationRef{method: method, path: path, op: op}
			}
		}
	}
	return r, nil
}

func (r *ResourceObject) Describe() string {
	if r.doc.Info != nil {
		return r.doc.Info.Title
	}
	return "Resource"
}

// Invoke calls the operation named method, substituting args[0] (a Dict of
// path/query parameters) when present and kwargs["body"] as the request
// body, per the document's operationId.
func (r *ResourceObject) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	ref, ok := r.byOpID[method]
	if !ok {
		return value.None, fmt.Errorf("resource has no operation %q", method)
	}

	path := ref.path
	var query []string
	if len(args) > 0 && args[0].Kind() == value.KindDict {
		d := args[0].AsDict()
		for _, k := range d.Keys() {
			v, _ := d.Get(k)
			placeholder := "{" + k + "}"
			if strings.Contains(path, placeholder) {
				path = strings.ReplaceAll(path, placeholder, value.Str(v))
			} else {
				query = append(query, k+"="+value.Str(v))
			}
		}
	}

	url := r.base + path
	if len(query) > 0 {
		url += "?" + strings.Join(query, "&")
	}

	var body io.Reader
	if b, ok := kwargs["body"]; ok {
		body = strings.NewReader(value.Str(b))
	}

	req, err := http.NewRequest(strings.ToUpper(ref.method), url, body)
	if err != nil {
		return value.None, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return value.None, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.None, err
	}

	result := value.NewDict()
	result.Set("status", value.Int(int64(resp.StatusCode)))
	result.Set("body", value.String(string(data)))
	return value.DictOf(result), nil
}
