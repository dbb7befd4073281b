package interp

import (
	"fmt"
	"math"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/value"
)

func (in *Interpreter) eval(e ast.Expression, env *Environment) value.Value {
	if in.signaled() {
		return value.None
	}
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n)
	case *ast.Identifier:
		v, ok := env.Get(n.Name)
		if !ok {
			in.failKey(errors.RuntimeError, n, "runtime.undefined_variable", n.Name)
			return value.None
		}
		return v
	case *ast.BinaryOp:
		return in.evalBinary(n, env)
	case *ast.UnaryOp:
		return in.evalUnary(n, env)
	case *ast.MemberAccess:
		return in.evalMember(n, env)
	case *ast.IndexAccess:
		return in.evalIndex(n, env)
	case *ast.Call:
		return in.evalCall(n, env)
	case *ast.MethodCall:
		return in.evalMethodCall(n, env)
	case *ast.Lambda:
		return value.FuncVal(&value.Function{
			Params:   n.Params,
			BodyExpr: n.Body,
			Closure:  env,
			Line:     n.Line(),
		})
	case *ast.FStringTemplate:
		return in.evalFString(n, env)
	case *ast.ArrayLiteral:
		items := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			items[i] = in.eval(el, env)
		}
		return value.ListOf(items)
	case *ast.ObjectLiteral:
		d := value.NewDict()
		for _, entry := range n.Entries {
			d.Set(entry.Key, in.eval(entry.Value, env))
		}
		return value.DictOf(d)
	case *ast.Conditional:
		if in.eval(n.Cond, env).Truthy() {
			return in.eval(n.Then, env)
		}
		return in.eval(n.Else, env)
	case *ast.Input:
		return in.evalInput(n, env)
	default:
		in.fail(e, "unsupported expression %T", e)
		return value.None
	}
}

func literalValue(l *ast.Literal) value.Value {
	switch v := l.Value.(type) {
	case int64:
		return value.Int(v)
	case float64:
		return value.Float(v)
	case string:
		return value.String(v)
	case bool:
		return value.Bool(v)
	default:
		return value.None
	}
}

func (in *Interpreter) evalArgs(exprs []ast.Expression, env *Environment) []value.Value {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		out[i] = in.eval(e, env)
	}
	return out
}

func (in *Interpreter) evalKwargs(exprs map[string]ast.Expression, env *Environment) map[string]value.Value {
	if len(exprs) == 0 {
		return nil
	}
	out := make(map[string]value.Value, len(exprs))
	for k, e := range exprs {
		out[k] = in.eval(e, env)
	}
	return out
}

func (in *Interpreter) evalBinary(n *ast.BinaryOp, env *Environment) value.Value {
	switch n.Operator {
	case "and":
		left := in.eval(n.Left, env)
		if !left.Truthy() {
			return left
		}
		return in.eval(n.Right, env)
	case "or":
		left := in.eval(n.Left, env)
		if left.Truthy() {
			return left
		}
		return in.eval(n.Right, env)
	}

	left := in.eval(n.Left, env)
	right := in.eval(n.Right, env)

	switch n.Operator {
	case "==":
		return value.Bool(value.Equal(left, right))
	case "!=":
		return value.Bool(!value.Equal(left, right))
	}

	if isNumericKind(left) && isNumericKind(right) {
		v, err := evalNumericBinary(n.Operator, left, right)
		if err != nil {
			in.fail(n, "%s", err)
			return value.None
		}
		return v
	}
	if n.Operator == "+" && left.Kind() == value.KindString && right.Kind() == value.KindString {
		return value.String(left.AsString() + right.AsString())
	}
	if n.Operator == "+" && left.Kind() == value.KindList && right.Kind() == value.KindList {
		return value.ListOf(left.AsList().Concat(right.AsList()).Items())
	}
	if isComparison(n.Operator) && left.Kind() == value.KindString && right.Kind() == value.KindString {
		return value.Bool(compareStrings(n.Operator, left.AsString(), right.AsString()))
	}

	in.fail(n, "unsupported operator %q for %s and %s", n.Operator, left.Kind(), right.Kind())
	return value.None
}

func isNumericKind(v value.Value) bool {
	return v.Kind() == value.KindInt || v.Kind() == value.KindFloat
}

func isComparison(op string) bool {
	switch op {
	case "<", "<=", ">", ">=":
		return true
	}
	return false
}

func compareStrings(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func evalNumericBinary(op string, left, right value.Value) (value.Value, error) {
	bothInt := left.Kind() == value.KindInt && right.Kind() == value.KindInt
	if bothInt {
		a, b := left.AsInt(), right.AsInt()
		switch op {
		case "+":
			return value.Int(a + b), nil
		case "-":
			return value.Int(a - b), nil
		case "*":
			return value.Int(a * b), nil
		case "/":
			if b == 0 {
				return value.None, fmt.Errorf("division by zero")
			}
			return value.Float(float64(a) / float64(b)), nil
		case "%":
			if b == 0 {
				return value.None, fmt.Errorf("modulo by zero")
			}
			return value.Int(a % b), nil
		case "<":
			return value.Bool(a < b), nil
		case "<=":
			return value.Bool(a <= b), nil
		case ">":
			return value.Bool(a > b), nil
		case ">=":
			return value.Bool(a >= b), nil
		}
	}
	a, b := asFloat(left), asFloat(right)
	switch op {
	case "+":
		return value.Float(a + b), nil
	case "-":
		return value.Float(a - b), nil
	case "*":
		return value.Float(a * b), nil
	case "/":
		if b == 0 {
			return value.None, fmt.Errorf("division by zero")
		}
		return value.Float(a / b), nil
	case "%":
		if b == 0 {
			return value.None, fmt.Errorf("modulo by zero")
		}
		return value.Float(math.Mod(a, b)), nil
	case "<":
		return value.Bool(a < b), nil
	case "<=":
		return value.Bool(a <= b), nil
	case ">":
		return value.Bool(a > b), nil
	case ">=":
		return value.Bool(a >= b), nil
	}
	return value.None, fmt.Errorf("unsupported numeric operator %q", op)
}

func asFloat(v value.Value) float64 {
	if v.Kind() == value.KindInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

func (in *Interpreter) evalUnary(n *ast.UnaryOp, env *Environment) value.Value {
	operand := in.eval(n.Operand, env)
	switch n.Operator {
	case "not":
		return value.Bool(!operand.Truthy())
	case "-":
		if operand.Kind() == value.KindInt {
			return value.Int(-operand.AsInt())
		}
		return value.Float(-asFloat(operand))
	case "+":
		return operand
	}
	in.fail(n, "unsupported unary operator %q", n.Operator)
	return value.None
}

func (in *Interpreter) evalMember(n *ast.MemberAccess, env *Environment) value.Value {
	target := in.eval(n.Target, env)
	switch target.Kind() {
	case value.KindDict:
		if v, ok := target.AsDict().Get(n.Name); ok {
			return v
		}
		return value.None
	case value.KindNamespace:
		ns := target.AsNamespace()
		// Namespaces that distinguish member reads from calls (imported
		// libraries) implement the optional Member protocol; host
		// namespaces expose constants through zero-arg Invoke.
		if mg, ok := ns.(interface {
			Member(string) (value.Value, error)
		}); ok {
			v, err := mg.Member(n.Name)
			if err != nil {
				in.fail(n, "%s", err)
				return value.None
			}
			return v
		}
		v, err := ns.Invoke(n.Name, nil, nil)
		if err != nil {
			in.fail(n, "%s", err)
			return value.None
		}
		return v
	default:
		in.fail(n, "cannot access member %q of a %s value", n.Name, target.Kind())
		return value.None
	}
}

func (in *Interpreter) evalIndex(n *ast.IndexAccess, env *Environment) value.Value {
	target := in.eval(n.Target, env)
	idx := in.eval(n.Index, env)
	switch target.Kind() {
	case value.KindList:
		v, ok := target.AsList().Resolve(int(idx.AsInt()))
		if !ok {
			in.failKey(errors.RuntimeError, n, "runtime.index_out_of_range", idx.AsInt())
			return value.None
		}
		return v
	case value.KindDict:
		v, ok := target.AsDict().Get(value.Str(idx))
		if !ok {
			in.failKey(errors.RuntimeError, n, "runtime.key_missing", value.Str(idx))
			return value.None
		}
		return v
	case value.KindString:
		runes := []rune(target.AsString())
		i := int(idx.AsInt())
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			in.fail(n, "string index %d out of range", idx.AsInt())
			return value.None
		}
		return value.String(string(runes[i]))
	default:
		in.fail(n, "cannot index a %s value", target.Kind())
		return value.None
	}
}

func (in *Interpreter) evalCall(n *ast.Call, env *Environment) value.Value {
	callee := in.eval(n.Callee, env)
	if callee.Kind() != value.KindFunction {
		in.failKey(errors.RuntimeError, n, "runtime.not_callable", callee.Kind())
		return value.None
	}
	return in.callFunction(callee.AsFunction(), in.evalArgs(n.Args, env), in.evalKwargs(n.Kwargs, env), n)
}

func (in *Interpreter) evalMethodCall(n *ast.MethodCall, env *Environment) value.Value {
	target := in.eval(n.Target, env)
	args := in.evalArgs(n.Args, env)
	kwargs := in.evalKwargs(n.Kwargs, env)

	switch target.Kind() {
	case value.KindNamespace:
		v, err := target.AsNamespace().Invoke(n.Method, args, kwargs)
		if err != nil {
			in.fail(n, "%s", err)
			return value.None
		}
		return v
	case value.KindResource:
		v, err := target.AsResource().Invoke(n.Method, args, kwargs)
		if err != nil {
			in.fail(n, "%s", err)
			return value.None
		}
		return v
	case value.KindList:
		v, ok := callListMethod(target.AsList(), n.Method, args)
		if !ok {
			in.fail(n, "unknown list method %q", n.Method)
			return value.None
		}
		return v
	case value.KindDict:
		v, ok := callDictMethod(target.AsDict(), n.Method, args)
		if !ok {
			in.fail(n, "unknown dict method %q", n.Method)
			return value.None
		}
		return v
	case value.KindString:
		v, ok := callStringMethod(target.AsString(), n.Method, args)
		if !ok {
			in.fail(n, "unknown string method %q", n.Method)
			return value.None
		}
		return v
	default:
		in.fail(n, "cannot call method %q on a %s value", n.Method, target.Kind())
		return value.None
	}
}

// lineAt lets callers that only have a bare line number (no ast.Node)
// satisfy the interface callFunction/fail use for error positions.
type lineAt int

func (l lineAt) Line() int { return int(l) }

// callFunction invokes fn against args/kwargs bound positionally by
// parameter name, checking arity first. Recursive calls are refused unless
// AllowRecursion is set: a function whose own name already appears active
// on the call stack fails fast rather than silently recursing.
func (in *Interpreter) callFunction(fn *value.Function, args []value.Value, kwargs map[string]value.Value, at interface{ Line() int }) value.Value {
	if fn.Native != nil {
		result, err := fn.Native(args)
		if err != nil {
			in.fail(at, "%s", err)
			return value.None
		}
		return result
	}
	if fn.Name != "" && !in.AllowRecursion {
		for _, active := range in.callStack {
			if active.FunctionName == fn.Name {
				in.failKey(errors.RuntimeError, at, "runtime.recursion_refused", fn.Name)
				return value.None
			}
		}
	}
	if len(args) > len(fn.Params) {
		in.failKey(errors.RuntimeError, at, "runtime.arity_too_many", fn.Name, len(fn.Params), len(args))
		return value.None
	}

	closureEnv, _ := fn.Closure.(*Environment)
	if closureEnv == nil {
		closureEnv = in.Env
	}
	callEnv := NewEnclosedEnvironment(closureEnv)

	for i, param := range fn.Params {
		if i < len(args) {
			callEnv.Define(param, args[i])
		} else if v, ok := kwargs[param]; ok {
			callEnv.Define(param, v)
		} else {
			in.failKey(errors.RuntimeError, at, "runtime.arity_too_few", fn.Name, param)
			return value.None
		}
	}

	if fn.BodyExpr != nil {
		return in.eval(fn.BodyExpr, callEnv)
	}

	if fn.Name != "" {
		in.callStack = append(in.callStack, errors.Frame{FunctionName: fn.Name, Line: at.Line()})
		defer func() { in.callStack = in.callStack[:len(in.callStack)-1] }()
	}

	savedReturn, savedReturnVal := in.returnFlag, in.returnValue
	in.returnFlag = false
	in.execBlock(fn.Body, callEnv)
	result := value.None
	if in.returnFlag {
		result = in.returnValue
	}
	in.returnFlag = savedReturn
	in.returnValue = savedReturnVal
	return result
}

func (in *Interpreter) evalFString(n *ast.FStringTemplate, env *Environment) value.Value {
	var out string
	for i, lit := range n.Literals {
		out += lit
		if i < len(n.Exprs) {
			out += value.Str(in.eval(n.Exprs[i], env))
		}
	}
	return value.String(out)
}
