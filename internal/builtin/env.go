package builtin

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/flowbylang/flowby/internal/value"
)

// EnvNamespace exposes process environment variables, optionally layered
// under a loaded .env file (github.com/joho/godotenv).
type EnvNamespace struct {
	loaded map[string]string
}

// NewEnvNamespace loads dotfilePath (if non-empty) with godotenv and
// returns a namespace that checks that map before falling back to
// os.Getenv.
func NewEnvNamespace(dotfilePath string) (*EnvNamespace, error) {
	ns := &EnvNamespace{}
	if dotfilePath == "" {
		return ns, nil
	}
	vars, err := godotenv.Read(dotfilePath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dotfilePath, err)
	}
	ns.loaded = vars
	return ns, nil
}

func (*EnvNamespace) Name() string { return "env" }

func (e *EnvNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "get":
		if len(args) == 0 || args[0].Kind() != value.KindString {
			return value.None, fmt.Errorf("env.get() expects a String argument")
		}
		name := args[0].AsString()
		if v, ok := e.loaded[name]; ok {
			return value.String(v), nil
		}
		if v, ok := os.LookupEnv(name); ok {
			return value.String(v), nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return value.None, nil
	case "has":
		if len(args) == 0 || args[0].Kind() != value.KindString {
			return value.False, nil
		}
		name := args[0].AsString()
		if _, ok := e.loaded[name]; ok {
			return value.True, nil
		}
		_, ok := os.LookupEnv(name)
		return value.Bool(ok), nil
	default:
		// Bare member access `env.NAME` is also accepted, matching the
		// `env` namespace's role as a free-form lookup surface.
		if v, ok := e.loaded[method]; ok {
			return value.String(v), nil
		}
		if v, ok := os.LookupEnv(method); ok {
			return value.String(v), nil
		}
		return value.None, nil
	}
}
