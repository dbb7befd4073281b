package builtin

import (
	"fmt"
	"strings"

	"github.com/flowbylang/flowby/internal/value"
)

// UtilNamespace holds the general-purpose string helpers scripts reach
// for: ord/chr, padding, repeat, and slugify.
type UtilNamespace struct{}

func (UtilNamespace) Name() string { return "util" }

func (UtilNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "ord":
		if len(args) != 1 || args[0].Kind() != value.KindString || args[0].AsString() == "" {
			return value.None, fmt.Errorf("util.ord() expects a non-empty String argument")
		}
		r := []rune(args[0].AsString())[0]
		return value.Int(int64(r)), nil
	case "chr":
		if len(args) != 1 || args[0].Kind() != value.KindInt {
			return value.None, fmt.Errorf("util.chr() expects an Int argument")
		}
		return value.String(string(rune(args[0].AsInt()))), nil
	case "padLeft":
		return pad(args, true)
	case "padRight":
		return pad(args, false)
	case "repeat":
		if len(args) != 2 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindInt {
			return value.None, fmt.Errorf("util.repeat() expects (String, Int)")
		}
		n := args[1].AsInt()
		if n < 0 {
			n = 0
		}
		return value.String(strings.Repeat(args[0].AsString(), int(n))), nil
	case "slugify":
		if len(args) != 1 || args[0].Kind() != value.KindString {
			return value.None, fmt.Errorf("util.slugify() expects a String argument")
		}
		return value.String(slugify(args[0].AsString())), nil
	default:
		return value.None, fmt.Errorf("util has no member %q", method)
	}
}

func pad(args []value.Value, left bool) (value.Value, error) {
	if len(args) < 2 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindInt {
		return value.None, fmt.Errorf("util pad function expects (String, Int, fillChar?)")
	}
	fill := " "
	if len(args) > 2 && args[2].Kind() == value.KindString && args[2].AsString() != "" {
		fill = args[2].AsString()[:1]
	}
	s := args[0].AsString()
	width := int(args[1].AsInt())
	for len([]rune(s)) < width {
		if left {
			s = fill + s
		} else {
			s = s + fill
		}
	}
	return value.String(s), nil
}

func slugify(s string) string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
