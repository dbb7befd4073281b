// Package action defines the ActionHost boundary the interpreter calls
// through for every domain statement (navigate, click, type, wait, assert,
// screenshot, scroll, extract, check, hover, upload, select): the core
// language never touches a browser or HTTP client itself, it only ever
// hands the action name, its positional and keyword arguments, and gets a
// Value back. The binding is fixed to the twelve domain-action keywords
// rather than an open registration surface.
package action

import "github.com/flowbylang/flowby/internal/value"

// Host is implemented by whatever environment actually drives a browser,
// an HTTP client, or a test double. Kind is one of the twelve action
// keyword names ("navigate", "click", "type", ...).
type Host interface {
	Do(kind string, args []value.Value, kwargs map[string]value.Value) (value.Value, error)
}

// LoggingHost is a reference Host that performs no real automation: it
// records every call it receives and returns a stub Value ("" for
// extract, True for check, None for every other kind). The CLI's `run`
// and `repl` commands use it, as do tests that only care about control
// flow.
type LoggingHost struct {
	Calls []Call
}

// Call is one recorded invocation.
type Call struct {
	Kind   string
	Args   []value.Value
	Kwargs map[string]value.Value
}

func NewLoggingHost() *LoggingHost { return &LoggingHost{} }

func (h *LoggingHost) Do(kind string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	h.Calls = append(h.Calls, Call{Kind: kind, Args: args, Kwargs: kwargs})
	switch kind {
	case "extract":
		return value.String(""), nil
	case "check":
		return value.True, nil
	default:
		return value.None, nil
	}
}
