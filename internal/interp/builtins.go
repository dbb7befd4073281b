package interp

import (
	"fmt"
	"strconv"

	"github.com/flowbylang/flowby/internal/value"
)

// registerFreeFunctions seeds the global environment with the fixed set of
// always-available free functions. Each is a native
// value.Function so calls go through the same evalCall/callFunction path
// as user-defined functions.
func registerFreeFunctions(env *Environment) {
	def := func(name string, fn func([]value.Value) (value.Value, error)) {
		env.Define(name, value.FuncVal(&value.Function{Name: name, Native: fn}))
	}

	def("len", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.None, fmt.Errorf("len() takes exactly one argument")
		}
		switch args[0].Kind() {
		case value.KindList:
			return value.Int(int64(args[0].AsList().Len())), nil
		case value.KindDict:
			return value.Int(int64(args[0].AsDict().Len())), nil
		case value.KindString:
			return value.Int(int64(len([]rune(args[0].AsString())))), nil
		default:
			return value.None, fmt.Errorf("len() of a %s value", args[0].Kind())
		}
	})

	def("str", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.None, fmt.Errorf("str() takes exactly one argument")
		}
		return value.String(value.Str(args[0])), nil
	})

	def("int", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.None, fmt.Errorf("int() takes exactly one argument")
		}
		switch a := args[0]; a.Kind() {
		case value.KindInt:
			return a, nil
		case value.KindFloat:
			return value.Int(int64(a.AsFloat())), nil
		case value.KindBool:
			if a.AsBool() {
				return value.Int(1), nil
			}
			return value.Int(0), nil
		case value.KindString:
			n, err := strconv.ParseInt(a.AsString(), 10, 64)
			if err != nil {
				return value.None, fmt.Errorf("int(): cannot parse %q", a.AsString())
			}
			return value.Int(n), nil
		default:
			return value.None, fmt.Errorf("int() of a %s value", a.Kind())
		}
	})

	def("float", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.None, fmt.Errorf("float() takes exactly one argument")
		}
		switch a := args[0]; a.Kind() {
		case value.KindFloat:
			return a, nil
		case value.KindInt:
			return value.Float(float64(a.AsInt())), nil
		case value.KindString:
			f, err := strconv.ParseFloat(a.AsString(), 64)
			if err != nil {
				return value.None, fmt.Errorf("float(): cannot parse %q", a.AsString())
			}
			return value.Float(f), nil
		default:
			return value.None, fmt.Errorf("float() of a %s value", a.Kind())
		}
	})

	def("bool", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.None, fmt.Errorf("bool() takes exactly one argument")
		}
		return value.Bool(args[0].Truthy()), nil
	})

	def("range", func(args []value.Value) (value.Value, error) {
		var start, stop, step int64 = 0, 0, 1
		switch len(args) {
		case 1:
			stop = args[0].AsInt()
		case 2:
			start, stop = args[0].AsInt(), args[1].AsInt()
		case 3:
			start, stop, step = args[0].AsInt(), args[1].AsInt(), args[2].AsInt()
		default:
			return value.None, fmt.Errorf("range() takes 1 to 3 arguments")
		}
		if step == 0 {
			return value.None, fmt.Errorf("range() step cannot be zero")
		}
		var out []value.Value
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, value.Int(i))
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, value.Int(i))
			}
		}
		return value.ListOf(out), nil
	})

	def("enumerate", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind() != value.KindList {
			return value.None, fmt.Errorf("enumerate() takes exactly one list argument")
		}
		items := args[0].AsList().Items()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = value.ListOf([]value.Value{value.Int(int64(i)), item})
		}
		return value.ListOf(out), nil
	})

	def("zip", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.ListOf(nil), nil
		}
		lists := make([][]value.Value, len(args))
		minLen := -1
		for i, a := range args {
			if a.Kind() != value.KindList {
				return value.None, fmt.Errorf("zip() arguments must be lists")
			}
			lists[i] = a.AsList().Items()
			if minLen == -1 || len(lists[i]) < minLen {
				minLen = len(lists[i])
			}
		}
		out := make([]value.Value, minLen)
		for i := 0; i < minLen; i++ {
			tuple := make([]value.Value, len(lists))
			for j := range lists {
				tuple[j] = lists[j][i]
			}
			out[i] = value.ListOf(tuple)
		}
		return value.ListOf(out), nil
	})
}
