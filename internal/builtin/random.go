package builtin

import (
	"fmt"
	"math/rand/v2"

	"github.com/flowbylang/flowby/internal/value"
)

// RandomNamespace backs the `random` namespace with math/rand/v2.
type RandomNamespace struct{}

func (RandomNamespace) Name() string { return "random" }

func (RandomNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "int":
		switch len(args) {
		case 0:
			return value.Int(rand.Int64()), nil
		case 1:
			n := args[0].AsInt()
			if n <= 0 {
				return value.None, fmt.Errorf("random.int() bound must be positive")
			}
			return value.Int(rand.Int64N(n)), nil
		case 2:
			lo, hi := args[0].AsInt(), args[1].AsInt()
			if hi <= lo {
				return value.None, fmt.Errorf("random.int() requires high > low")
			}
			return value.Int(lo + rand.Int64N(hi-lo)), nil
		default:
			return value.None, fmt.Errorf("random.int() takes 0 to 2 arguments")
		}
	case "float":
		return value.Float(rand.Float64()), nil
	case "bool":
		return value.Bool(rand.IntN(2) == 1), nil
	case "choice":
		if len(args) != 1 || args[0].Kind() != value.KindList {
			return value.None, fmt.Errorf("random.choice() expects a List argument")
		}
		l := args[0].AsList()
		if l.Len() == 0 {
			return value.None, fmt.Errorf("random.choice() of an empty list")
		}
		return l.Get(rand.IntN(l.Len())), nil
	case "shuffle":
		if len(args) != 1 || args[0].Kind() != value.KindList {
			return value.None, fmt.Errorf("random.shuffle() expects a List argument")
		}
		items := args[0].AsList().Items()
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		return value.ListOf(items), nil
	default:
		return value.None, fmt.Errorf("random has no member %q", method)
	}
}
