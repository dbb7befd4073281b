package interp

import (
	"sort"
	"strings"

	"github.com/flowbylang/flowby/internal/value"
)

// callListMethod implements the built-in List method set.
func callListMethod(l *value.List, method string, args []value.Value) (value.Value, bool) {
	switch method {
	case "append":
		for _, a := range args {
			l.Append(a)
		}
		return value.None, true
	case "contains":
		for i := 0; i < l.Len(); i++ {
			if len(args) > 0 && value.Equal(l.Get(i), args[0]) {
				return value.True, true
			}
		}
		return value.False, true
	case "index":
		for i := 0; i < l.Len(); i++ {
			if len(args) > 0 && value.Equal(l.Get(i), args[0]) {
				return value.Int(int64(i)), true
			}
		}
		return value.Int(-1), true
	case "sort":
		items := l.Items()
		sort.SliceStable(items, func(i, j int) bool { return value.Str(items[i]) < value.Str(items[j]) })
		return value.ListOf(items), true
	case "reverse":
		items := l.Items()
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		return value.ListOf(items), true
	case "join":
		sep := ""
		if len(args) > 0 {
			sep = value.Str(args[0])
		}
		parts := make([]string, l.Len())
		for i := 0; i < l.Len(); i++ {
			parts[i] = value.Str(l.Get(i))
		}
		return value.String(strings.Join(parts, sep)), true
	default:
		return value.None, false
	}
}

// callDictMethod implements the built-in Dict method set.
func callDictMethod(d *value.Dict, method string, args []value.Value) (value.Value, bool) {
	switch method {
	case "keys":
		keys := d.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.String(k)
		}
		return value.ListOf(out), true
	case "values":
		keys := d.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := d.Get(k)
			out[i] = v
		}
		return value.ListOf(out), true
	case "items":
		keys := d.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := d.Get(k)
			out[i] = value.ListOf([]value.Value{value.String(k), v})
		}
		return value.ListOf(out), true
	case "get":
		if len(args) == 0 {
			return value.None, true
		}
		if v, ok := d.Get(value.Str(args[0])); ok {
			return v, true
		}
		if len(args) > 1 {
			return args[1], true
		}
		return value.None, true
	case "has":
		if len(args) == 0 {
			return value.False, true
		}
		_, ok := d.Get(value.Str(args[0]))
		return value.Bool(ok), true
	default:
		return value.None, false
	}
}

// callStringMethod implements the built-in String method set.
func callStringMethod(s string, method string, args []value.Value) (value.Value, bool) {
	switch method {
	case "upper":
		return value.String(strings.ToUpper(s)), true
	case "lower":
		return value.String(strings.ToLower(s)), true
	case "trim":
		return value.String(strings.TrimSpace(s)), true
	case "split":
		sep := " "
		if len(args) > 0 {
			sep = value.Str(args[0])
		}
		parts := strings.Split(s, sep)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return value.ListOf(out), true
	case "contains":
		if len(args) == 0 {
			return value.False, true
		}
		return value.Bool(strings.Contains(s, value.Str(args[0]))), true
	case "replace":
		if len(args) < 2 {
			return value.String(s), true
		}
		return value.String(strings.ReplaceAll(s, value.Str(args[0]), value.Str(args[1]))), true
	case "startswith":
		if len(args) == 0 {
			return value.False, true
		}
		return value.Bool(strings.HasPrefix(s, value.Str(args[0]))), true
	case "endswith":
		if len(args) == 0 {
			return value.False, true
		}
		return value.Bool(strings.HasSuffix(s, value.Str(args[0]))), true
	default:
		return value.None, false
	}
}
