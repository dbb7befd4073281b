// Package builtin implements Flowby's host-provided namespace objects
// (Math, Date, JSON, random, http, env, util, Resource), each satisfying
// value.Namespace so the interpreter dispatches member calls like
// `Math.sqrt(x)` through Invoke without any special-casing in
// internal/interp.
package builtin

import (
	"fmt"
	"math"

	"github.com/flowbylang/flowby/internal/value"
)

// MathNamespace wraps the stdlib math package behind Flowby's Value type.
type MathNamespace struct{}

func (MathNamespace) Name() string { return "Math" }

func (MathNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "PI":
		return value.Float(math.Pi), nil
	case "E":
		return value.Float(math.E), nil
	case "pow":
		if len(args) != 2 {
			return value.None, fmt.Errorf("Math.pow() expects 2 arguments, got %d", len(args))
		}
		return value.Float(math.Pow(asFloat(args[0]), asFloat(args[1]))), nil
	case "max":
		return reduceFloat(method, args, math.Max)
	case "min":
		return reduceFloat(method, args, math.Min)
	}

	one, err := oneFloatArg(method, args)
	if err != nil {
		return value.None, err
	}
	switch method {
	case "sin":
		return value.Float(math.Sin(one)), nil
	case "cos":
		return value.Float(math.Cos(one)), nil
	case "tan":
		return value.Float(math.Tan(one)), nil
	case "sqrt":
		if one < 0 {
			return value.None, fmt.Errorf("Math.sqrt() of a negative number")
		}
		return value.Float(math.Sqrt(one)), nil
	case "abs":
		return value.Float(math.Abs(one)), nil
	case "floor":
		return value.Int(int64(math.Floor(one))), nil
	case "ceil":
		return value.Int(int64(math.Ceil(one))), nil
	case "round":
		return value.Int(int64(math.Round(one))), nil
	case "log":
		return value.Float(math.Log(one)), nil
	case "log10":
		return value.Float(math.Log10(one)), nil
	case "exp":
		return value.Float(math.Exp(one)), nil
	}

	return value.None, fmt.Errorf("Math has no member %q", method)
}

func oneFloatArg(method string, args []value.Value) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("Math.%s() expects exactly 1 argument, got %d", method, len(args))
	}
	if args[0].Kind() != value.KindInt && args[0].Kind() != value.KindFloat {
		return 0, fmt.Errorf("Math.%s() expects a number, got %s", method, args[0].Kind())
	}
	return asFloat(args[0]), nil
}

func asFloat(v value.Value) float64 {
	if v.Kind() == value.KindInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

func reduceFloat(method string, args []value.Value, f func(a, b float64) float64) (value.Value, error) {
	if len(args) == 0 {
		return value.None, fmt.Errorf("Math.%s() expects at least 1 argument", method)
	}
	result := asFloat(args[0])
	for _, a := range args[1:] {
		result = f(result, asFloat(a))
	}
	return value.Float(result), nil
}
