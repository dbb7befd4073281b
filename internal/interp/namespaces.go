package interp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

// registerNamespaces seeds the global environment with the fixed set of
// always-defined namespace roots, each dispatching through
// value.Namespace so evalMember/evalMethodCall need no special-casing
// between host namespaces and imported library aliases.
func registerNamespaces(env *Environment, host action.Host, dotEnvPath string, out Logger) {
	client := &http.Client{Timeout: 30 * time.Second}

	env.Define("Math", value.NamespaceVal(builtin.MathNamespace{}))
	env.Define("Date", value.NamespaceVal(builtin.DateNamespace{}))
	env.Define("JSON", value.NamespaceVal(builtin.JSONNamespace{}))
	env.Define("random", value.NamespaceVal(builtin.RandomNamespace{}))
	env.Define("util", value.NamespaceVal(builtin.UtilNamespace{}))
	env.Define("http", value.NamespaceVal(&builtin.HTTPNamespace{Client: client}))

	envNS, err := builtin.NewEnvNamespace(dotEnvPath)
	if err != nil {
		if out != nil {
			out.Log(fmt.Sprintf("env: failed to load %q: %s", dotEnvPath, err))
		}
		envNS, _ = builtin.NewEnvNamespace("")
	}
	env.Define("env", value.NamespaceVal(envNS))

	env.Define("page", value.NamespaceVal(&pageNamespace{host: host}))
	env.Define("response", value.None)

	env.Define("Resource", value.FuncVal(&value.Function{
		Name: "Resource",
		Native: func(args []value.Value) (value.Value, error) {
			specPath := ""
			baseURL := ""
			if len(args) > 0 {
				specPath = args[0].AsString()
			}
			if len(args) > 1 {
				baseURL = args[1].AsString()
			}
			r, err := builtin.LoadResource(specPath, baseURL, client)
			if err != nil {
				return value.None, err
			}
			return value.ResourceVal(r), nil
		},
	}))
}

// pageNamespace exposes the current browser page as `page.<query>()`,
// routed through the same ActionHost domain actions call, prefixed so a
// Host implementation can tell page queries apart from action statements.
type pageNamespace struct {
	host action.Host
}

func (*pageNamespace) Name() string { return "page" }

func (p *pageNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if p.host == nil {
		return value.None, nil
	}
	return p.host.Do("page."+method, args, kwargs)
}
