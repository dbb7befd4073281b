package builtin

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowbylang/flowby/internal/value"
)

// HTTPNamespace backs the `http` namespace with net/http. The Client is
// shared with ResourceObject so both reuse one connection pool.
type HTTPNamespace struct {
	Client *http.Client
}

func NewHTTPNamespace() *HTTPNamespace {
	return &HTTPNamespace{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (*HTTPNamespace) Name() string { return "http" }

func (h *HTTPNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "get":
		return h.do("GET", args, kwargs)
	case "post":
		return h.do("POST", args, kwargs)
	case "put":
		return h.do("PUT", args, kwargs)
	case "delete":
		return h.do("DELETE", args, kwargs)
	default:
		return value.None, fmt.Errorf("http has no member %q", method)
	}
}

func (h *HTTPNamespace) do(verb string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if len(args) == 0 || args[0].Kind() != value.KindString {
		return value.None, fmt.Errorf("http.%s() expects a URL string", strings.ToLower(verb))
	}
	url := args[0].AsString()

	var body io.Reader
	if b, ok := kwargs["body"]; ok {
		body = strings.NewReader(value.Str(b))
	}

	req, err := http.NewRequest(verb, url, body)
	if err != nil {
		return value.None, err
	}
	if hv, ok := kwargs["headers"]; ok && hv.Kind() == value.KindDict {
		for _, k := range hv.AsDict().Keys() {
			v, _ := hv.AsDict().Get(k)
			req.Header.Set(k, value.Str(v))
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return value.None, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.None, err
	}

	headers := value.NewDict()
	for k := range resp.Header {
		headers.Set(k, value.String(resp.Header.Get(k)))
	}

	result := value.NewDict()
	result.Set("status", value.Int(int64(resp.StatusCode)))
	result.Set("headers", value.DictOf(headers))
	result.Set("body", value.String(string(data)))
	return value.DictOf(result), nil
}
